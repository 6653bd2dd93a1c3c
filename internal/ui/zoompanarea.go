package ui

import (
	"image"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const (
	defaultMinZoom        float32 = 0.1
	defaultMaxZoom        float32 = 10.0
	defaultZoomScrollStep float32 = 0.1
)

// ZoomPanArea shows an image fitted to its size. Scrolling zooms around the
// centre and dragging pans. Taps are not handled, so they reach the
// enclosing widget.
type ZoomPanArea struct {
	widget.BaseWidget

	img    image.Image
	raster *canvas.Raster

	zoomFactor float32
	panOffset  fyne.Position
	fitted     bool

	minZoom float32
	maxZoom float32
	minSize fyne.Size

	isPanning    bool
	lastMousePos fyne.Position
}

// NewZoomPanArea creates an empty area with the given minimum size.
func NewZoomPanArea(minSize fyne.Size) *ZoomPanArea {
	zpa := &ZoomPanArea{
		zoomFactor: 1,
		minZoom:    defaultMinZoom,
		maxZoom:    defaultMaxZoom,
		minSize:    minSize,
	}
	zpa.raster = canvas.NewRaster(zpa.draw)
	zpa.ExtendBaseWidget(zpa)
	return zpa
}

// SetImage replaces the image and fits it to the view. nil clears it.
func (zpa *ZoomPanArea) SetImage(img image.Image) {
	zpa.img = img
	zpa.fitted = false
	zpa.Reset()
}

// Image returns the image on display.
func (zpa *ZoomPanArea) Image() image.Image {
	return zpa.img
}

// Zoom returns the current zoom factor.
func (zpa *ZoomPanArea) Zoom() float32 {
	return zpa.zoomFactor
}

// Reset fits the whole image into the view and centres it.
func (zpa *ZoomPanArea) Reset() {
	zpa.panOffset = fyne.Position{}
	zpa.zoomFactor = 1
	size := zpa.Size()
	if zpa.img != nil && size.Width > 0 && size.Height > 0 {
		b := zpa.img.Bounds()
		imgW, imgH := float32(b.Dx()), float32(b.Dy())
		zpa.zoomFactor = size.Width / imgW
		if zh := size.Height / imgH; zh < zpa.zoomFactor {
			zpa.zoomFactor = zh
		}
		zpa.panOffset.X = (size.Width - imgW*zpa.zoomFactor) / 2
		zpa.panOffset.Y = (size.Height - imgH*zpa.zoomFactor) / 2
		zpa.fitted = true
	}
	zpa.Refresh()
}

// draw renders the visible part of the image at the current zoom and pan.
func (zpa *ZoomPanArea) draw(w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if zpa.img == nil || w <= 0 || h <= 0 {
		return dst
	}
	// raster pixels may differ from fyne units on scaled displays
	scale := 1.0
	if width := zpa.Size().Width; width > 0 {
		scale = float64(w) / float64(width)
	}
	z := float64(zpa.zoomFactor) * scale
	b := zpa.img.Bounds()
	s2d := f64.Aff3{
		z, 0, float64(zpa.panOffset.X)*scale - float64(b.Min.X)*z,
		0, z, float64(zpa.panOffset.Y)*scale - float64(b.Min.Y)*z,
	}
	xdraw.ApproxBiLinear.Transform(dst, s2d, zpa.img, b, draw.Over, nil)
	return dst
}

// CreateRenderer is a Fyne lifecycle method.
func (zpa *ZoomPanArea) CreateRenderer() fyne.WidgetRenderer {
	return &zoomPanAreaRenderer{zpa: zpa}
}

// Scrolled zooms towards the centre of the view.
func (zpa *ZoomPanArea) Scrolled(ev *fyne.ScrollEvent) {
	if zpa.img == nil {
		return
	}
	size := zpa.Size()
	cx, cy := size.Width/2, size.Height/2

	imgX := (cx - zpa.panOffset.X) / zpa.zoomFactor
	imgY := (cy - zpa.panOffset.Y) / zpa.zoomFactor

	switch {
	case ev.Scrolled.DY < 0:
		zpa.zoomFactor /= 1 + defaultZoomScrollStep
	case ev.Scrolled.DY > 0:
		zpa.zoomFactor *= 1 + defaultZoomScrollStep
	}
	if zpa.zoomFactor < zpa.minZoom {
		zpa.zoomFactor = zpa.minZoom
	}
	if zpa.zoomFactor > zpa.maxZoom {
		zpa.zoomFactor = zpa.maxZoom
	}

	zpa.panOffset.X = cx - imgX*zpa.zoomFactor
	zpa.panOffset.Y = cy - imgY*zpa.zoomFactor
	zpa.Refresh()
}

// MouseDown starts panning.
func (zpa *ZoomPanArea) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		zpa.isPanning = true
		zpa.lastMousePos = ev.Position
	}
}

// MouseUp stops panning.
func (zpa *ZoomPanArea) MouseUp(_ *desktop.MouseEvent) {
	zpa.isPanning = false
}

// Dragged pans the image.
func (zpa *ZoomPanArea) Dragged(ev *fyne.DragEvent) {
	if !zpa.isPanning {
		zpa.isPanning = true
		zpa.lastMousePos = ev.Position.Subtract(ev.Dragged)
	}
	zpa.panOffset = zpa.panOffset.Add(ev.Position.Subtract(zpa.lastMousePos))
	zpa.lastMousePos = ev.Position
	zpa.Refresh()
}

// DragEnd finalizes panning.
func (zpa *ZoomPanArea) DragEnd() {
	zpa.isPanning = false
}

type zoomPanAreaRenderer struct{ zpa *ZoomPanArea }

func (r *zoomPanAreaRenderer) Layout(size fyne.Size) {
	r.zpa.raster.Resize(size)
	if !r.zpa.fitted {
		r.zpa.Reset()
	}
}
func (r *zoomPanAreaRenderer) MinSize() fyne.Size           { return r.zpa.minSize }
func (r *zoomPanAreaRenderer) Refresh()                     { canvas.Refresh(r.zpa.raster) }
func (r *zoomPanAreaRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.zpa.raster} }
func (r *zoomPanAreaRenderer) Destroy()                     {}

var _ fyne.Widget = (*ZoomPanArea)(nil)
var _ fyne.Scrollable = (*ZoomPanArea)(nil)
var _ fyne.Draggable = (*ZoomPanArea)(nil)
