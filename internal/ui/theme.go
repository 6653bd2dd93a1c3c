package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// backdropColor dims the gallery behind the open modal.
var backdropColor = color.NRGBA{A: 0xc0}

// galleryTheme wraps an existing theme and tightens padding so more cards
// fit on a row.
type galleryTheme struct {
	fyne.Theme
}

var _ fyne.Theme = (*galleryTheme)(nil)

// Size overrides padding; everything else comes from the embedded theme.
func (t *galleryTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 6
	}
	return t.Theme.Size(name)
}

func (t *galleryTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameShadow {
		return backdropColor
	}
	return t.Theme.Color(name, variant)
}

// NewGalleryTheme creates a theme wrapper based on baseTheme.
func NewGalleryTheme(baseTheme fyne.Theme) fyne.Theme {
	return &galleryTheme{Theme: baseTheme}
}

// transparent returns c with its alpha cleared.
func transparent(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0
	return n
}

// opaque returns c fully opaque.
func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
