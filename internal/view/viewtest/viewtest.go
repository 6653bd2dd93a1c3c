// Package viewtest provides recording implementations of the view element
// handles for tests that run without a rendering surface.
package viewtest

import (
	"time"

	"fygallery/internal/anim"
	"fygallery/internal/catalog"
	"fygallery/internal/view"
)

// Clock reports the current virtual time for event stamps.
type Clock interface {
	Now() time.Duration
}

// CardEvent records a conceal or reveal on a card.
type CardEvent struct {
	Index    int
	Kind     string // "conceal" or "reveal"
	At       time.Duration
	Duration time.Duration
}

// Card is a recording card handle.
type Card struct {
	id     int
	index  int
	clock  Clock
	events *[]CardEvent
}

func (c *Card) ID() int { return c.id }

func (c *Card) Conceal() {
	*c.events = append(*c.events, CardEvent{Index: c.index, Kind: "conceal", At: c.clock.Now()})
}

func (c *Card) Reveal(d time.Duration) {
	*c.events = append(*c.events, CardEvent{Index: c.index, Kind: "reveal", At: c.clock.Now(), Duration: d})
}

// Gallery is a recording gallery region.
type Gallery struct {
	clock Clock

	Fades       []anim.Fade
	Fade        anim.Fade
	Placeholder bool
	Title, Hint string
	Models      []view.CardModel
	Renders     int
	CardEvents  []CardEvent

	onClick func(id int)
	// stale holds click bindings of earlier renders.
	stale []func(id int)
}

// NewGallery creates a gallery stamping card events with clock.
func NewGallery(clock Clock) *Gallery {
	return &Gallery{clock: clock}
}

func (g *Gallery) SetFade(f anim.Fade) {
	g.Fade = f
	g.Fades = append(g.Fades, f)
}

func (g *Gallery) ShowPlaceholder(title, hint string) {
	g.retire()
	g.Renders++
	g.Placeholder = true
	g.Title, g.Hint = title, hint
	g.Models = nil
}

func (g *Gallery) ShowCards(models []view.CardModel, onClick func(id int)) []view.Card {
	g.retire()
	g.Renders++
	g.Placeholder = false
	g.Title, g.Hint = "", ""
	g.Models = append([]view.CardModel(nil), models...)
	g.onClick = onClick
	cards := make([]view.Card, 0, len(models))
	for i, m := range models {
		cards = append(cards, &Card{id: m.ID, index: i, clock: g.clock, events: &g.CardEvents})
	}
	return cards
}

func (g *Gallery) retire() {
	if g.onClick != nil {
		g.stale = append(g.stale, g.onClick)
		g.onClick = nil
	}
}

// IDs returns the ids of the cards on screen, in order.
func (g *Gallery) IDs() []int {
	ids := make([]int, 0, len(g.Models))
	for _, m := range g.Models {
		ids = append(ids, m.ID)
	}
	return ids
}

// Click simulates a click on the card with id in the current render.
// It reports whether such a card is shown.
func (g *Gallery) Click(id int) bool {
	for _, m := range g.Models {
		if m.ID == id && g.onClick != nil {
			g.onClick(id)
			return true
		}
	}
	return false
}

// ClickStale fires the click binding of the render n steps back.
func (g *Gallery) ClickStale(n, id int) {
	if n < 1 || n > len(g.stale) {
		return
	}
	g.stale[len(g.stale)-n](id)
}

// Search is an in-memory search field.
type Search struct {
	Value string
	Sets  int
}

func (s *Search) Text() string { return s.Value }

func (s *Search) SetText(t string) {
	s.Value = t
	s.Sets++
}

// CategoryButton is a category control.
type CategoryButton struct {
	ID     string
	Active bool
}

func (b *CategoryButton) Category() string { return b.ID }
func (b *CategoryButton) SetActive(a bool) { b.Active = a }

// CategoryButtons builds one button per identifier.
func CategoryButtons(ids ...string) []*CategoryButton {
	out := make([]*CategoryButton, 0, len(ids))
	for _, id := range ids {
		out = append(out, &CategoryButton{ID: id})
	}
	return out
}

// Controls converts buttons to element handles.
func Controls(buttons []*CategoryButton) []view.CategoryControl {
	out := make([]view.CategoryControl, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, b)
	}
	return out
}

// Pager records pagination output.
type Pager struct {
	Text        string
	PrevEnabled bool
	NextEnabled bool
}

func (p *Pager) SetPageText(t string)  { p.Text = t }
func (p *Pager) SetPrevEnabled(e bool) { p.PrevEnabled = e }
func (p *Pager) SetNextEnabled(e bool) { p.NextEnabled = e }

// Modal records the overlay surface.
type Modal struct {
	URL, Caption string
	Keywords     []string
	Visible      bool
	Focused      int
}

func (m *Modal) SetImage(url, caption string) { m.URL, m.Caption = url, caption }
func (m *Modal) SetKeywords(k []string)       { m.Keywords = k }
func (m *Modal) SetVisible(v bool)            { m.Visible = v }
func (m *Modal) FocusClose()                  { m.Focused++ }

// Scroll records the background scroll lock.
type Scroll struct {
	Locked bool
}

func (s *Scroll) SetScrollLocked(l bool) { s.Locked = l }

// Stats records reported statistics.
type Stats struct {
	Reports []catalog.Stats
}

func (s *Stats) ReportStats(st catalog.Stats) { s.Reports = append(s.Reports, st) }

// Surface bundles a full set of recording elements.
type Surface struct {
	Gallery    *Gallery
	Search     *Search
	Categories []*CategoryButton
	Pager      *Pager
	Modal      *Modal
	Scroll     *Scroll
	Stats      *Stats
}

// NewSurface creates recording elements with the given category buttons.
func NewSurface(clock Clock, categories ...string) *Surface {
	return &Surface{
		Gallery:    NewGallery(clock),
		Search:     &Search{},
		Categories: CategoryButtons(categories...),
		Pager:      &Pager{},
		Modal:      &Modal{},
		Scroll:     &Scroll{},
		Stats:      &Stats{},
	}
}

// Elements returns the handles for view.New.
func (s *Surface) Elements() view.Elements {
	return view.Elements{
		Gallery:    s.Gallery,
		Search:     s.Search,
		Categories: Controls(s.Categories),
		Pager:      s.Pager,
		Modal:      s.Modal,
		Page:       s.Scroll,
		Stats:      s.Stats,
	}
}

// ActiveCategories returns the identifiers of active buttons.
func (s *Surface) ActiveCategories() []string {
	var out []string
	for _, b := range s.Categories {
		if b.Active {
			out = append(out, b.ID)
		}
	}
	return out
}
