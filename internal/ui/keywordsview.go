package ui

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/catalog"
)

const (
	noKeywordsFoundMsg       = "No keywords in this collection."
	noKeywordsMatchSearchMsg = "No keywords match your search."
)

// keywordListItem is one row of the keyword browser.
type keywordListItem struct {
	Name  string
	Count int
}

// keywordCounts tallies keywords over images, most used first.
func keywordCounts(images []catalog.Image) []keywordListItem {
	counts := make(map[string]int)
	for _, img := range images {
		for _, k := range img.Keywords {
			counts[k]++
		}
	}
	items := make([]keywordListItem, 0, len(counts))
	for name, n := range counts {
		items = append(items, keywordListItem{Name: name, Count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// keywordBrowser lists the collection's keywords. Selecting one searches
// the gallery for it.
type keywordBrowser struct {
	all      []keywordListItem
	filtered []keywordListItem

	filter   *widget.Entry
	list     *widget.List
	message  *widget.Label
	onSelect func(keyword string)
}

func newKeywordBrowser(images []catalog.Image, onSelect func(string)) *keywordBrowser {
	b := &keywordBrowser{all: keywordCounts(images), onSelect: onSelect}

	b.filter = widget.NewEntry()
	b.filter.SetPlaceHolder("Filter keywords...")
	b.filter.OnChanged = b.applyFilter

	b.list = widget.NewList(
		func() int { return len(b.filtered) },
		func() fyne.CanvasObject { return widget.NewLabel("keyword template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			item := b.filtered[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%d)", item.Name, item.Count))
		},
	)
	b.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(b.filtered) {
			return
		}
		b.onSelect(b.filtered[id].Name)
		b.list.UnselectAll()
	}

	b.message = widget.NewLabel("")
	b.message.Alignment = fyne.TextAlignCenter
	b.message.Wrapping = fyne.TextWrapWord

	b.applyFilter("")
	return b
}

func (b *keywordBrowser) applyFilter(term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	b.filtered = b.filtered[:0]
	for _, item := range b.all {
		if term == "" || strings.Contains(strings.ToLower(item.Name), term) {
			b.filtered = append(b.filtered, item)
		}
	}

	if len(b.filtered) == 0 {
		msg := noKeywordsFoundMsg
		if term != "" {
			msg = noKeywordsMatchSearchMsg
		}
		b.message.SetText(msg)
		b.message.Show()
		b.list.Hide()
		return
	}
	b.message.Hide()
	b.list.Show()
	b.list.Refresh()
}

func (b *keywordBrowser) content() fyne.CanvasObject {
	return container.NewBorder(b.filter, nil, nil, nil, container.NewStack(b.list, b.message))
}

// searchKeyword puts keyword in the search field and submits it.
func (a *App) searchKeyword(keyword string) {
	a.UI.search.SetText(keyword)
	a.view.SubmitSearch()
}

func (a *App) showKeywords() {
	win := a.app.NewWindow("Keywords")
	browser := newKeywordBrowser(a.controller.AllImages(), func(k string) {
		a.addLogMessage(fmt.Sprintf("Searching for keyword '%s'", k))
		a.searchKeyword(k)
	})
	win.SetContent(browser.content())
	win.Resize(fyne.NewSize(320, 420))
	win.Show()
}
