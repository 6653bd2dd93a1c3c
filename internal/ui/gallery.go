package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/anim"
	"fygallery/internal/view"
)

// galleryRegion is the card grid plus the no-results placeholder. A cover
// rectangle over both carries the fade markers.
type galleryRegion struct {
	grid        *fyne.Container
	placeholder *fyne.Container
	title       *widget.Label
	hint        *widget.Label
	cover       *canvas.Rectangle
	content     *fyne.Container

	thumbs *ThumbnailManager
	cards  []*galleryCard
	fade   anim.Fade
	anim   *fyne.Animation
}

var _ view.GalleryRegion = (*galleryRegion)(nil)

func newGalleryRegion(thumbs *ThumbnailManager) *galleryRegion {
	g := &galleryRegion{
		grid:   container.NewGridWrap(cardSize),
		title:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		hint:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		cover:  canvas.NewRectangle(color.Transparent),
		thumbs: thumbs,
	}
	g.title.SizeName = theme.SizeNameSubHeadingText
	g.placeholder = container.NewCenter(container.NewVBox(
		widget.NewIcon(theme.SearchIcon()),
		g.title,
		g.hint,
	))
	g.placeholder.Hide()
	g.content = container.NewStack(g.grid, g.placeholder, g.cover)
	return g
}

// SetFade implements view.GalleryRegion.
func (g *galleryRegion) SetFade(f anim.Fade) {
	if g.anim != nil {
		g.anim.Stop()
		g.anim = nil
	}
	g.fade = f
	bg := theme.Color(theme.ColorNameBackground)
	switch f {
	case anim.FadeOut:
		g.animate(transparent(bg), opaque(bg), anim.FadeOutDuration)
	case anim.FadeIn:
		g.animate(opaque(bg), transparent(bg), anim.FadeInDuration)
	default:
		g.cover.FillColor = color.Transparent
		g.cover.Refresh()
	}
}

func (g *galleryRegion) animate(from, to color.Color, d time.Duration) {
	g.cover.FillColor = from
	g.cover.Refresh()
	g.anim = canvas.NewColorRGBAAnimation(from, to, d, func(c color.Color) {
		g.cover.FillColor = c
		g.cover.Refresh()
	})
	g.anim.Start()
}

// ShowPlaceholder implements view.GalleryRegion.
func (g *galleryRegion) ShowPlaceholder(title, hint string) {
	g.cards = nil
	g.grid.Objects = nil
	g.grid.Refresh()
	g.title.SetText(title)
	g.hint.SetText(hint)
	g.placeholder.Show()
}

// ShowCards implements view.GalleryRegion. The old cards and their tap
// bindings are dropped with the grid's previous objects.
func (g *galleryRegion) ShowCards(models []view.CardModel, onClick func(id int)) []view.Card {
	g.placeholder.Hide()
	g.cards = make([]*galleryCard, 0, len(models))
	objects := make([]fyne.CanvasObject, 0, len(models))
	out := make([]view.Card, 0, len(models))
	for _, m := range models {
		id := m.ID
		card := newGalleryCard(m, g.thumbs, func() { onClick(id) })
		g.cards = append(g.cards, card)
		objects = append(objects, card)
		out = append(out, card)
	}
	g.grid.Objects = objects
	g.grid.Refresh()
	return out
}
