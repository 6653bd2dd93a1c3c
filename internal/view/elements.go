// Package view is the presentation layer of the gallery. It owns the
// visible elements through injected handles, turns raw input into handler
// calls and runs the modal state machine.
package view

import (
	"time"

	"fygallery/internal/anim"
	"fygallery/internal/catalog"
)

// CardModel is what one gallery card shows.
type CardModel struct {
	ID       int
	URL      string
	Title    string
	Category string
}

// Card is a rendered card handle.
type Card interface {
	ID() int
	// Conceal puts the card in its invisible, offset entrance state.
	Conceal()
	// Reveal transitions the card to fully visible over d.
	Reveal(d time.Duration)
}

// GalleryRegion is the container holding the cards.
type GalleryRegion interface {
	SetFade(anim.Fade)
	// ShowPlaceholder replaces the content with the no-results message.
	ShowPlaceholder(title, hint string)
	// ShowCards replaces the content with one card per model, in order.
	// onClick is bound to the new cards only.
	ShowCards(cards []CardModel, onClick func(id int)) []Card
}

// SearchField is the free-text search input.
type SearchField interface {
	Text() string
	SetText(string)
}

// CategoryControl is one category filter button.
type CategoryControl interface {
	Category() string
	SetActive(bool)
}

// Pager holds the page position text and the navigation controls.
type Pager interface {
	SetPageText(string)
	SetPrevEnabled(bool)
	SetNextEnabled(bool)
}

// ModalSurface is the overlay showing one image in detail.
type ModalSurface interface {
	SetImage(url, caption string)
	SetKeywords([]string)
	SetVisible(bool)
	FocusClose()
}

// PageScroll controls scrolling of the content behind the modal.
type PageScroll interface {
	SetScrollLocked(bool)
}

// StatsSink is the observability sink for gallery statistics.
type StatsSink interface {
	ReportStats(catalog.Stats)
}

// Elements are the handles a View renders into.
type Elements struct {
	Gallery    GalleryRegion
	Search     SearchField
	Categories []CategoryControl
	Pager      Pager
	Modal      ModalSurface
	Page       PageScroll
	Stats      StatsSink
}
