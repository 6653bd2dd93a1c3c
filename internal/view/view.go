package view

import (
	"fmt"
	"time"

	"fygallery/internal/anim"
	"fygallery/internal/catalog"
)

const (
	// NoResultsTitle is the headline of the empty-result placeholder.
	NoResultsTitle = "No images found"
	// NoResultsHint is the second line of the empty-result placeholder.
	NoResultsHint = "Try adjusting the filters or search terms"
)

// PageText formats the page position line.
func PageText(current, total int) string {
	return fmt.Sprintf("Page %d of %d", current, total)
}

// View renders gallery state into its Elements and owns the modal.
type View struct {
	el         Elements
	sched      anim.Scheduler
	transition *anim.Transition
	handlers   handlers

	renderGen  int // bumped by every RenderGallery call
	shownGen   int // generation currently on screen
	cards      []Card
	pendingRev *anim.Stagger

	modal    ModalState
	modalGen int
}

// New creates a View over el. Missing handles are replaced by no-ops.
func New(el Elements, sched anim.Scheduler) *View {
	el = withDefaults(el)
	v := &View{el: el, sched: sched}
	v.transition = anim.NewTransition(sched, el.Gallery.SetFade)
	return v
}

// Transition exposes the gallery region's transition state machine.
func (v *View) Transition() *anim.Transition {
	return v.transition
}

// RenderGallery fades the gallery out, swaps in one card per image (or the
// no-results placeholder) and fades it back in.
func (v *View) RenderGallery(images []catalog.Image) {
	models := make([]CardModel, 0, len(images))
	for _, img := range images {
		models = append(models, CardModel{
			ID:       img.ID,
			URL:      img.URL,
			Title:    img.Title,
			Category: img.CategoryLabel(),
		})
	}
	v.renderGen++
	gen := v.renderGen
	v.transition.Run(func() { v.swap(gen, models) })
}

func (v *View) swap(gen int, models []CardModel) {
	v.shownGen = gen
	if len(models) == 0 {
		v.cards = nil
		v.el.Gallery.ShowPlaceholder(NoResultsTitle, NoResultsHint)
	} else {
		v.cards = v.el.Gallery.ShowCards(models, func(id int) {
			// cards from an earlier render are dead
			if gen != v.shownGen {
				return
			}
			v.cardClicked(id)
		})
	}
	if v.pendingRev != nil && gen == v.renderGen {
		s := *v.pendingRev
		v.pendingRev = nil
		v.startReveal(s)
	}
}

// RevealCards runs the staggered entrance over the cards of the latest
// render, deferring it until that render has been swapped in.
func (v *View) RevealCards(s anim.Stagger) {
	if v.shownGen != v.renderGen {
		v.pendingRev = &s
		return
	}
	v.startReveal(s)
}

func (v *View) startReveal(s anim.Stagger) {
	cards := v.cards
	s.Schedule(v.sched, len(cards),
		func(i int) { cards[i].Conceal() },
		func(i int, d time.Duration) { cards[i].Reveal(d) })
}

// Cards returns the card handles of the content on screen.
func (v *View) Cards() []Card {
	return v.cards
}

// UpdatePagination shows the page position and enables navigation
// controls that can move.
func (v *View) UpdatePagination(info catalog.PaginationInfo) {
	v.el.Pager.SetPageText(PageText(info.CurrentPage, info.TotalPages))
	v.el.Pager.SetPrevEnabled(info.HasPrevPage)
	v.el.Pager.SetNextEnabled(info.HasNextPage)
}

// UpdateCategoryButtons marks the control whose identifier equals
// active, and only that one.
func (v *View) UpdateCategoryButtons(active string) {
	for _, c := range v.el.Categories {
		c.SetActive(c.Category() == active)
	}
}

// UpdateSearchInput sets the search field text verbatim.
func (v *View) UpdateSearchInput(term string) {
	v.el.Search.SetText(term)
}

// ShowStats forwards stats to the observability sink.
func (v *View) ShowStats(stats catalog.Stats) {
	v.el.Stats.ReportStats(stats)
}
