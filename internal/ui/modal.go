package ui

import (
	"bytes"
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/service"
	"fygallery/internal/view"
)

// modalSurface is the full-size image overlay. It lives in the window's
// overlay stack while visible.
type modalSurface struct {
	canvas   fyne.Canvas
	images   *service.ImageService
	logger   func(string)
	onTapped func(view.OverlayTarget)
	onClose  func()
	async    bool

	root     *fyne.Container
	backdrop *tapArea
	content  *tapArea
	image    *ZoomPanArea
	caption  *widget.Label
	detail   *widget.Label
	keywords *fyne.Container
	closeBtn *closeButton

	url     string
	visible bool
}

var _ view.ModalSurface = (*modalSurface)(nil)

func newModalSurface(c fyne.Canvas, images *service.ImageService, logger func(string),
	onTapped func(view.OverlayTarget), onClose func()) *modalSurface {
	m := &modalSurface{
		canvas:   c,
		images:   images,
		logger:   logger,
		onTapped: onTapped,
		onClose:  onClose,
		async:    true,
	}

	m.image = NewZoomPanArea(fyne.NewSize(640, 440))
	m.caption = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	m.detail = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	m.keywords = container.NewHBox()
	m.closeBtn = newCloseButton(theme.CancelIcon(), func() { m.onClose() })

	header := container.NewHBox(layout.NewSpacer(), m.closeBtn)
	footer := container.NewVBox(m.caption, m.detail, container.NewCenter(m.keywords))
	box := container.NewStack(
		canvas.NewRectangle(theme.Color(theme.ColorNameBackground)),
		container.NewPadded(container.NewBorder(header, footer, nil, nil, m.image)),
	)
	m.content = newTapArea(box, func() { m.onTapped(view.TargetContent) })
	m.backdrop = newTapArea(canvas.NewRectangle(backdropColor), func() { m.onTapped(view.TargetBackdrop) })
	m.root = container.NewStack(m.backdrop, container.NewCenter(m.content))
	return m
}

// SetImage implements view.ModalSurface. An empty url clears the content;
// otherwise the image and its details are loaded in the background.
func (m *modalSurface) SetImage(url, caption string) {
	m.url = url
	m.caption.SetText(caption)
	m.detail.SetText("")
	m.image.SetImage(nil)
	if url == "" {
		return
	}
	m.run(func() func() {
		return m.load(url)
	})
}

// load decodes url and returns the UI update to apply.
func (m *modalSurface) load(url string) func() {
	var (
		img    image.Image
		detail string
	)
	if isRemote(url) {
		res, err := fyne.LoadResourceFromURLString(url)
		if err == nil {
			img, _, err = image.Decode(bytes.NewReader(res.Content()))
		}
		if err != nil {
			m.logger(fmt.Sprintf("Unable to load %s: %v", url, err))
			return nil
		}
	} else {
		info, decoded, err := m.images.GetImageInfo(url)
		if err != nil {
			m.logger(fmt.Sprintf("Unable to load %s: %v", url, err))
			return nil
		}
		img, detail = decoded, info.DetailLine()
	}
	return func() {
		// a later SetImage wins
		if m.url != url {
			return
		}
		m.image.SetImage(img)
		m.detail.SetText(detail)
	}
}

func (m *modalSurface) run(work func() func()) {
	if !m.async {
		if apply := work(); apply != nil {
			apply()
		}
		return
	}
	go func() {
		if apply := work(); apply != nil {
			fyne.Do(apply)
		}
	}()
}

// SetKeywords implements view.ModalSurface. One token per keyword, in order.
func (m *modalSurface) SetKeywords(kws []string) {
	objects := make([]fyne.CanvasObject, 0, len(kws))
	for _, k := range kws {
		objects = append(objects, keywordToken(k))
	}
	m.keywords.Objects = objects
	m.keywords.Refresh()
}

func keywordToken(k string) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.CornerRadius = theme.Size(theme.SizeNameSelectionRadius)
	return container.NewStack(bg, container.NewPadded(widget.NewLabel(k)))
}

// SetVisible implements view.ModalSurface.
func (m *modalSurface) SetVisible(visible bool) {
	if visible == m.visible {
		return
	}
	m.visible = visible
	if visible {
		m.canvas.Overlays().Add(m.root)
		return
	}
	m.canvas.Overlays().Remove(m.root)
}

// FocusClose implements view.ModalSurface.
func (m *modalSurface) FocusClose() {
	m.canvas.Focus(m.closeBtn)
}
