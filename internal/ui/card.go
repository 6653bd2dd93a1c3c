package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/view"
)

// cardSize is the cell size of one card in the gallery grid.
var cardSize = fyne.NewSize(ThumbnailWidth, ThumbnailHeight+56)

// galleryCard shows one image thumbnail with its title and category label.
// A cover rectangle in the background colour hides the card while it is
// concealed and fades away on reveal.
type galleryCard struct {
	widget.BaseWidget

	id       int
	image    *canvas.Image
	title    *widget.Label
	category *widget.Label
	cover    *canvas.Rectangle
	onTapped func()

	anim     *fyne.Animation
	revealed bool
}

var _ view.Card = (*galleryCard)(nil)

func newGalleryCard(m view.CardModel, thumbs *ThumbnailManager, onTapped func()) *galleryCard {
	c := &galleryCard{
		id:       m.ID,
		title:    widget.NewLabelWithStyle(m.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		category: widget.NewLabel(m.Category),
		cover:    canvas.NewRectangle(transparent(theme.Color(theme.ColorNameBackground))),
		onTapped: onTapped,
		revealed: true,
	}
	c.title.Truncation = fyne.TextTruncateEllipsis
	c.category.Truncation = fyne.TextTruncateEllipsis
	c.category.Importance = widget.LowImportance

	c.image = canvas.NewImageFromResource(nil)
	c.image.FillMode = canvas.ImageFillContain
	c.image.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))
	if thumbs != nil {
		c.image.Resource = thumbs.GetThumbnail(m.URL, func(res fyne.Resource) {
			c.image.Resource = res
			c.image.Refresh()
		})
	}
	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (c *galleryCard) CreateRenderer() fyne.WidgetRenderer {
	labels := container.NewVBox(c.title, c.category)
	body := container.NewBorder(nil, labels, nil, nil, c.image)
	return widget.NewSimpleRenderer(container.NewStack(body, c.cover))
}

// Tapped is called when the card is tapped.
func (c *galleryCard) Tapped(_ *fyne.PointEvent) {
	if c.onTapped != nil {
		c.onTapped()
	}
}

// ID implements view.Card.
func (c *galleryCard) ID() int { return c.id }

// Conceal implements view.Card.
func (c *galleryCard) Conceal() {
	c.stop()
	c.revealed = false
	c.cover.FillColor = opaque(theme.Color(theme.ColorNameBackground))
	c.cover.Refresh()
}

// Reveal implements view.Card.
func (c *galleryCard) Reveal(d time.Duration) {
	c.stop()
	c.revealed = true
	bg := theme.Color(theme.ColorNameBackground)
	c.anim = canvas.NewColorRGBAAnimation(opaque(bg), transparent(bg), d, func(col color.Color) {
		c.cover.FillColor = col
		c.cover.Refresh()
	})
	c.anim.Curve = fyne.AnimationEaseOut
	c.anim.Start()
}

func (c *galleryCard) stop() {
	if c.anim != nil {
		c.anim.Stop()
		c.anim = nil
	}
}
