package ui

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/catalog"
	"fygallery/internal/gallery"
)

// About is a small dialog describing the application and the loaded
// collection.
type About struct {
	title     string
	parent    fyne.Window
	container *fyne.Container
	d         dialog.Dialog
}

// NewAbout builds the dialog content; body is shown under the icon.
func NewAbout(parent fyne.Window, title string, image fyne.Resource, body string) *About {
	a := &About{
		title:  title,
		parent: parent,
	}

	img := canvas.NewImageFromResource(image)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(96, 96))

	text := widget.NewLabel(body)
	text.Alignment = fyne.TextAlignCenter

	ok := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("OK", func() { a.Hide() }),
		layout.NewSpacer(),
	)

	a.container = container.NewBorder(nil, ok, nil, nil, container.NewVBox(img, text))
	return a
}

func (a *About) Hide() {
	if a.d != nil {
		a.d.Hide()
	}
}

func (a *About) Show() {
	a.d = dialog.NewCustomWithoutButtons(a.title, a.container, a.parent)
	a.d.Show()
}

// aboutText summarizes the collection.
func aboutText(st gallery.DetailedStats, storedKeywords int) string {
	var b strings.Builder
	b.WriteString("A paged, searchable image gallery.\n\n")
	fmt.Fprintf(&b, "%d images, %d shown by the current filter\n", st.TotalImages, st.FilteredImages)
	fmt.Fprintf(&b, "Page %d of %d, %d per page\n", st.CurrentPage, st.TotalPages, st.ImagesPerPage)
	fmt.Fprintf(&b, "%d distinct keywords", st.UniqueKeywords)
	if storedKeywords >= 0 {
		fmt.Fprintf(&b, " (%d in the keyword database)", storedKeywords)
	}
	names := make([]string, 0, len(st.Categories))
	for name := range st.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s: %d", catalog.CategoryTitle(name), st.Categories[name])
	}
	return b.String()
}

func (a *App) showAbout() {
	stored := -1
	if a.KeywordService != nil {
		if all, err := a.KeywordService.ListAllKeywords(); err == nil {
			stored = len(all)
		}
	}
	NewAbout(a.UI.MainWin, "About FyGallery", theme.FileImageIcon(), aboutText(a.controller.DetailedStats(), stored)).Show()
}
