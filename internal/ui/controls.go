package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"fygallery/internal/catalog"
	"fygallery/internal/view"
)

// searchField wraps the search entry.
type searchField struct {
	entry *widget.Entry
}

func newSearchField(onSubmit func()) *searchField {
	e := widget.NewEntry()
	e.SetPlaceHolder("Search by title, category or keyword")
	e.OnSubmitted = func(string) { onSubmit() }
	return &searchField{entry: e}
}

func (s *searchField) Text() string     { return s.entry.Text }
func (s *searchField) SetText(t string) { s.entry.SetText(t) }

// categoryButton is one category filter control.
type categoryButton struct {
	id     string
	button *widget.Button
}

var _ view.CategoryControl = (*categoryButton)(nil)

func newCategoryButton(id string, onTap func(id string)) *categoryButton {
	label := catalog.CategoryTitle(id)
	b := &categoryButton{id: id}
	b.button = widget.NewButton(label, func() { onTap(id) })
	return b
}

func (b *categoryButton) Category() string { return b.id }

func (b *categoryButton) SetActive(active bool) {
	if active {
		b.button.Importance = widget.HighImportance
	} else {
		b.button.Importance = widget.MediumImportance
	}
	b.button.Refresh()
}

func (b *categoryButton) active() bool {
	return b.button.Importance == widget.HighImportance
}

// categoryIDs returns the filter identifiers for the button row: "all"
// first, then configured categories or, when none are configured, the ones
// present in the collection.
func categoryIDs(configured, present []string) []string {
	ids := []string{catalog.AllCategories}
	src := configured
	if len(src) == 0 {
		src = present
	}
	for _, c := range src {
		if c != catalog.AllCategories {
			ids = append(ids, c)
		}
	}
	return ids
}

// pager is the page position label with its navigation buttons.
type pager struct {
	label *widget.Label
	prev  *widget.Button
	next  *widget.Button
}

func newPager(onPrev, onNext func()) *pager {
	return &pager{
		label: widget.NewLabel(""),
		prev:  widget.NewButton("Previous", onPrev),
		next:  widget.NewButton("Next", onNext),
	}
}

func (p *pager) SetPageText(t string) { p.label.SetText(t) }

func (p *pager) SetPrevEnabled(enabled bool) { setEnabled(p.prev, enabled) }

func (p *pager) SetNextEnabled(enabled bool) { setEnabled(p.next, enabled) }

func (p *pager) container() *fyne.Container {
	return container.NewHBox(p.prev, p.label, p.next)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// pageScroll locks the gallery scroll container while the modal is open.
type pageScroll struct {
	scroll *container.Scroll
	locked bool
}

func (p *pageScroll) SetScrollLocked(locked bool) {
	p.locked = locked
	if locked {
		p.scroll.Direction = container.ScrollNone
	} else {
		p.scroll.Direction = container.ScrollVerticalOnly
	}
	p.scroll.Refresh()
}
