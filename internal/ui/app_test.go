package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fygallery/internal/anim"
	"fygallery/internal/catalog"
	"fygallery/internal/config"
	"fygallery/internal/gallery"
	"fygallery/internal/view"
)

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 24))
	for x := 0; x < 32; x++ {
		for y := 0; y < 24; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 10), B: 0x80, A: 0xff})
		}
	}
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return p
}

func testCollection(t *testing.T, n int) []catalog.Image {
	t.Helper()
	dir := t.TempDir()
	cats := []string{"nature", "architecture", "animals"}
	out := make([]catalog.Image, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, catalog.Image{
			ID:         i,
			URL:        writePNG(t, dir, fmt.Sprintf("%02d.png", i)),
			Title:      fmt.Sprintf("Photo %d", i),
			Categories: catalog.Categories{cats[(i-1)%len(cats)]},
			Keywords:   []string{fmt.Sprintf("kw%d", i), "shared"},
		})
	}
	return out
}

func newTestApp(t *testing.T, images []catalog.Image) (*App, *anim.ManualScheduler) {
	t.Helper()
	fa := test.NewTempApp(t)
	sched := anim.NewManualScheduler()
	cfg := config.Default()
	a := New(fa, images, Options{Config: cfg, Scheduler: sched})
	a.thumbs.async = false
	a.UI.modal.async = false
	sched.RunAll()
	return a, sched
}

func (a *App) cardIDs() []int {
	ids := make([]int, 0, len(a.UI.gallery.cards))
	for _, c := range a.UI.gallery.cards {
		ids = append(ids, c.id)
	}
	return ids
}

func (a *App) activeCategories() []string {
	var out []string
	for _, c := range a.UI.categories {
		if c.active() {
			out = append(out, c.id)
		}
	}
	return out
}

func (a *App) category(id string) *categoryButton {
	for _, c := range a.UI.categories {
		if c.id == id {
			return c
		}
	}
	return nil
}

func keywordTexts(m *modalSurface) []string {
	var out []string
	for _, obj := range m.keywords.Objects {
		stack := obj.(*fyne.Container)
		padded := stack.Objects[1].(*fyne.Container)
		out = append(out, padded.Objects[0].(*widget.Label).Text)
	}
	return out
}

func TestNewRendersFirstPage(t *testing.T) {
	a, _ := newTestApp(t, testCollection(12))

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, a.cardIDs())
	assert.Len(t, a.UI.gallery.grid.Objects, 9)
	assert.False(t, a.UI.gallery.placeholder.Visible())
	assert.Equal(t, "Page 1 of 2", a.UI.pager.label.Text)
	assert.True(t, a.UI.pager.prev.Disabled())
	assert.False(t, a.UI.pager.next.Disabled())
	assert.Equal(t, []string{"all"}, a.activeCategories())
	assert.Equal(t, "12 of 12 images | 13 keywords", a.UI.stats.label.Text)
	assert.Contains(t, a.logUIManager.Messages(), "Loaded 12 images")

	for _, c := range a.UI.gallery.cards {
		assert.True(t, c.revealed)
		assert.NotNil(t, c.image.Resource)
	}
}

func TestCategoryButtonsFollowCollection(t *testing.T) {
	a, _ := newTestApp(t, testCollection(3))

	var ids []string
	for _, c := range a.UI.categories {
		ids = append(ids, c.id)
	}
	assert.Equal(t, []string{"all", "animals", "architecture", "nature"}, ids)
	assert.Equal(t, "Architecture", a.category("architecture").button.Text)
}

func TestSearchButton(t *testing.T) {
	a, sched := newTestApp(t, testCollection(12))

	a.UI.search.entry.SetText("photo 1")
	test.Tap(a.UI.searchBtn)
	sched.RunAll()

	assert.Equal(t, []int{1, 10, 11, 12}, a.cardIDs())
	assert.Equal(t, "Page 1 of 1", a.UI.pager.label.Text)
	assert.True(t, a.UI.pager.next.Disabled())
}

func TestSearchEnter(t *testing.T) {
	a, sched := newTestApp(t, testCollection(12))

	a.UI.search.entry.SetText("Photo 7")
	a.UI.search.entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	sched.RunAll()

	assert.Equal(t, []int{7}, a.cardIDs())
}

func TestCategoryButtonTap(t *testing.T) {
	a, sched := newTestApp(t, testCollection(12))

	test.Tap(a.category("animals").button)
	sched.RunAll()

	assert.Equal(t, []int{3, 6, 9, 12}, a.cardIDs())
	assert.Equal(t, []string{"animals"}, a.activeCategories())
	assert.Equal(t, widget.MediumImportance, a.category("all").button.Importance)
}

func TestNoResultsPlaceholder(t *testing.T) {
	a, sched := newTestApp(t, testCollection(3))

	a.UI.search.entry.SetText("zebra")
	test.Tap(a.UI.searchBtn)
	sched.RunAll()

	assert.Empty(t, a.UI.gallery.grid.Objects)
	assert.True(t, a.UI.gallery.placeholder.Visible())
	assert.Equal(t, view.NoResultsTitle, a.UI.gallery.title.Text)
	assert.Equal(t, "Page 1 of 1", a.UI.pager.label.Text)
}

func TestPagerButtons(t *testing.T) {
	a, sched := newTestApp(t, testCollection(12))

	test.Tap(a.UI.pager.next)
	sched.RunAll()
	assert.Equal(t, []int{10, 11, 12}, a.cardIDs())
	assert.Equal(t, "Page 2 of 2", a.UI.pager.label.Text)
	assert.False(t, a.UI.pager.prev.Disabled())
	assert.True(t, a.UI.pager.next.Disabled())

	test.Tap(a.UI.pager.prev)
	sched.RunAll()
	assert.Equal(t, "Page 1 of 2", a.UI.pager.label.Text)
}

func TestResetButton(t *testing.T) {
	a, sched := newTestApp(t, testCollection(12))

	test.Tap(a.category("nature").button)
	a.UI.search.entry.SetText("photo")
	test.Tap(a.UI.searchBtn)
	sched.RunAll()

	test.Tap(a.UI.resetBtn)
	sched.RunAll()
	assert.Equal(t, "", a.UI.search.entry.Text)
	assert.Equal(t, []string{"all"}, a.activeCategories())
	assert.Len(t, a.cardIDs(), 9)
}

func TestCardTapOpensModal(t *testing.T) {
	a, sched := newTestApp(t, testCollection(4))
	overlays := a.UI.MainWin.Canvas().Overlays()

	test.Tap(a.UI.gallery.cards[1])
	require.True(t, a.view.ModalState().Open)
	assert.Equal(t, 2, a.view.ModalState().Image.ID)
	assert.Equal(t, a.UI.modal.root, overlays.Top())
	assert.Equal(t, "Photo 2", a.UI.modal.caption.Text)
	assert.Equal(t, []string{"kw2", "shared"}, keywordTexts(a.UI.modal))
	assert.NotNil(t, a.UI.modal.image.Image())
	assert.Equal(t, "32 × 24 px", a.UI.modal.detail.Text)
	assert.True(t, a.UI.pageScroll.locked)
	assert.Equal(t, container.ScrollNone, a.UI.scroll.Direction)

	sched.Advance(anim.ModalFocusDelay)
	assert.Equal(t, a.UI.modal.closeBtn, a.UI.MainWin.Canvas().Focused())
}

func TestModalContentTapKeepsOpen(t *testing.T) {
	a, _ := newTestApp(t, testCollection(2))

	test.Tap(a.UI.gallery.cards[0])
	test.Tap(a.UI.modal.content)
	assert.True(t, a.view.ModalState().Open)
	assert.Equal(t, a.UI.modal.root, a.UI.MainWin.Canvas().Overlays().Top())
}

func TestModalBackdropTapCloses(t *testing.T) {
	a, sched := newTestApp(t, testCollection(2))

	test.Tap(a.UI.gallery.cards[0])
	test.Tap(a.UI.modal.backdrop)
	assert.False(t, a.view.ModalState().Open)
	assert.Nil(t, a.UI.MainWin.Canvas().Overlays().Top())
	assert.False(t, a.UI.pageScroll.locked)
	assert.Equal(t, "Photo 1", a.UI.modal.caption.Text, "content stays during the close transition")

	sched.Advance(anim.ModalCloseDuration)
	assert.Equal(t, "", a.UI.modal.caption.Text)
	assert.Empty(t, a.UI.modal.keywords.Objects)
	assert.Nil(t, a.UI.modal.image.Image())
}

func TestModalCloseButton(t *testing.T) {
	a, _ := newTestApp(t, testCollection(2))

	test.Tap(a.UI.gallery.cards[0])
	test.Tap(a.UI.modal.closeBtn)
	assert.False(t, a.view.ModalState().Open)
}

func TestEscapeClosesModalWhenCloseFocused(t *testing.T) {
	a, sched := newTestApp(t, testCollection(2))
	c := a.UI.MainWin.Canvas()

	test.Tap(a.UI.gallery.cards[0])
	sched.Advance(anim.ModalFocusDelay)
	focused := c.Focused()
	require.NotNil(t, focused)

	focused.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.False(t, a.view.ModalState().Open)
	assert.Nil(t, c.Overlays().Top())
}

func TestCloseButtonKeys(t *testing.T) {
	test.NewTempApp(t)
	taps := 0
	b := newCloseButton(nil, func() { taps++ })

	b.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Equal(t, 1, taps)

	b.TypedKey(&fyne.KeyEvent{Name: fyne.KeyA})
	assert.Equal(t, 1, taps)

	b.Disable()
	b.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Equal(t, 1, taps)
}

func TestKeys(t *testing.T) {
	a, sched := newTestApp(t, testCollection(12))

	a.typedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	sched.RunAll()
	assert.Equal(t, "Page 2 of 2", a.UI.pager.label.Text)

	test.Tap(a.UI.gallery.cards[0])
	a.typedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	sched.RunAll()
	assert.Equal(t, "Page 2 of 2", a.UI.pager.label.Text, "paging is inert behind the modal")

	a.typedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.False(t, a.view.ModalState().Open)

	a.typedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	sched.RunAll()
	assert.Equal(t, "Page 1 of 2", a.UI.pager.label.Text)
}

func TestSearchKeyword(t *testing.T) {
	a, sched := newTestApp(t, testCollection(12))

	a.searchKeyword("kw11")
	sched.RunAll()
	assert.Equal(t, "kw11", a.UI.search.entry.Text)
	assert.Equal(t, []int{11}, a.cardIDs())
}

func TestKeywordCounts(t *testing.T) {
	items := keywordCounts([]catalog.Image{
		{Keywords: []string{"sky", "tree"}},
		{Keywords: []string{"tree", "lake"}},
		{Keywords: []string{"tree", "sky"}},
	})
	assert.Equal(t, []keywordListItem{
		{Name: "tree", Count: 3},
		{Name: "sky", Count: 2},
		{Name: "lake", Count: 1},
	}, items)
}

func TestKeywordBrowser(t *testing.T) {
	test.NewTempApp(t)
	var picked []string
	b := newKeywordBrowser([]catalog.Image{
		{Keywords: []string{"Sunset", "tree"}},
		{Keywords: []string{"tree"}},
	}, func(k string) { picked = append(picked, k) })

	assert.Equal(t, 2, b.list.Length())
	assert.False(t, b.message.Visible())

	b.filter.SetText("SUN")
	require.Equal(t, 1, b.list.Length())
	b.list.Select(0)
	assert.Equal(t, []string{"Sunset"}, picked)

	b.filter.SetText("zzz")
	assert.True(t, b.message.Visible())
	assert.Equal(t, noKeywordsMatchSearchMsg, b.message.Text)

	empty := newKeywordBrowser(nil, func(string) {})
	assert.Equal(t, noKeywordsFoundMsg, empty.message.Text)
}

func TestCategoryIDs(t *testing.T) {
	assert.Equal(t, []string{"all", "b", "a"}, categoryIDs([]string{"b", "all", "a"}, []string{"x"}))
	assert.Equal(t, []string{"all", "x"}, categoryIDs(nil, []string{"x"}))
	assert.Equal(t, []string{"all"}, categoryIDs(nil, nil))
}

func TestAboutText(t *testing.T) {
	st := gallery.DetailedStats{
		Stats: catalog.Stats{
			TotalImages:    5,
			FilteredImages: 2,
			UniqueKeywords: 7,
			Categories:     map[string]int{"nature": 3, "animals": 2},
		},
		PaginationInfo: catalog.PaginationInfo{CurrentPage: 1, TotalPages: 1},
		ImagesPerPage:  9,
	}
	text := aboutText(st, 4)
	assert.Contains(t, text, "5 images, 2 shown by the current filter")
	assert.Contains(t, text, "Page 1 of 1, 9 per page")
	assert.Contains(t, text, "(4 in the keyword database)")
	assert.Less(t, strings.Index(text, "Animals: 2"), strings.Index(text, "Nature: 3"))

	assert.NotContains(t, aboutText(st, -1), "keyword database")
}

func TestLogUIManager(t *testing.T) {
	test.NewTempApp(t)
	label := widget.NewLabel("")
	up := widget.NewButton("", nil)
	down := widget.NewButton("", nil)
	lm := NewLogUIManager(nil, label, up, down, 2)

	lm.UpdateLogDisplay()
	assert.True(t, up.Disabled())
	assert.True(t, down.Disabled())

	lm.AddLogMessage("one")
	lm.AddLogMessage("two")
	lm.AddLogMessage("three")
	assert.Equal(t, []string{"two", "three"}, lm.Messages())
	assert.Equal(t, "[2/2] three", label.Text)
	assert.False(t, up.Disabled())
	assert.True(t, down.Disabled())

	lm.ShowPreviousLogMessage()
	assert.Equal(t, "[1/2] two", label.Text)
	assert.True(t, up.Disabled())
	lm.ShowNextLogMessage()
	assert.Equal(t, "[2/2] three", label.Text)
}

func TestThumbnailCache(t *testing.T) {
	test.NewTempApp(t)
	p := writePNG(t, t.TempDir(), "a.png")
	tm := NewThumbnailManager(nil, nil)
	tm.async = false

	first := tm.GetThumbnail(p, nil)
	require.NotNil(t, first)
	_, ok := tm.cached(p)
	assert.True(t, ok)
	assert.Equal(t, first, tm.GetThumbnail(p, nil))
}
