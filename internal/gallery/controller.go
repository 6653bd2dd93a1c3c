// Package gallery holds the controller that turns user intent into catalog
// changes and drives the view through its update sequence.
package gallery

import (
	"io"

	"github.com/charmbracelet/log"

	"fygallery/internal/anim"
	"fygallery/internal/catalog"
	"fygallery/internal/view"
)

// Catalog is the query state and image store the controller mutates.
type Catalog interface {
	SetSearch(term string)
	SetCategory(category string)
	PrevPage() bool
	NextPage() bool
	AllImages() []catalog.Image
	FilteredImages() []catalog.Image
	CurrentPageImages() []catalog.Image
	PaginationInfo() catalog.PaginationInfo
	Stats() catalog.Stats
	CurrentCategory() string
	CurrentSearch() string
	ImagesPerPage() int
	FindByID(id int) (catalog.Image, bool)
}

// Presenter is the rendering side of the gallery.
type Presenter interface {
	RenderGallery(images []catalog.Image)
	UpdatePagination(info catalog.PaginationInfo)
	UpdateCategoryButtons(active string)
	UpdateSearchInput(term string)
	ShowStats(stats catalog.Stats)
	RevealCards(s anim.Stagger)
	ShowModal(img catalog.Image)

	SetSearchHandler(h view.SearchHandler)
	SetCategoryHandler(h view.CategoryHandler)
	SetPrevPageHandler(h view.PrevPageHandler)
	SetNextPageHandler(h view.NextPageHandler)
	SetImageClickHandler(h view.ImageClickHandler)
}

// DetailedStats combines catalog stats, pagination and the page size.
type DetailedStats struct {
	catalog.Stats
	catalog.PaginationInfo
	ImagesPerPage int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for trigger tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStagger overrides the card entrance used after each update.
func WithStagger(s anim.Stagger) Option {
	return func(c *Controller) { c.stagger = s }
}

// Controller is the single mutator of the catalog's query state.
type Controller struct {
	catalog   Catalog
	presenter Presenter
	sched     anim.Scheduler
	logger    *log.Logger
	stagger   anim.Stagger

	scheduled int
	updates   int
}

// New wires the controller as every interaction handler of p and schedules
// the initial gallery update.
func New(c Catalog, p Presenter, sched anim.Scheduler, opts ...Option) *Controller {
	ctrl := &Controller{
		catalog:   c,
		presenter: p,
		sched:     sched,
		logger:    log.New(io.Discard),
		stagger:   anim.DefaultStagger,
	}
	for _, opt := range opts {
		opt(ctrl)
	}

	p.SetSearchHandler(ctrl)
	p.SetCategoryHandler(ctrl)
	p.SetPrevPageHandler(ctrl)
	p.SetNextPageHandler(ctrl)
	p.SetImageClickHandler(ctrl)

	ctrl.scheduleUpdate("init")
	return ctrl
}

// OnSearchChange implements view.SearchHandler. The term is stored verbatim.
func (c *Controller) OnSearchChange(term string) {
	c.catalog.SetSearch(term)
	c.scheduleUpdate("search", "term", term)
}

// OnCategoryChange implements view.CategoryHandler. Unknown categories are
// passed through and simply match nothing.
func (c *Controller) OnCategoryChange(category string) {
	c.catalog.SetCategory(category)
	c.scheduleUpdate("category", "category", category)
}

// OnPrevPage implements view.PrevPageHandler.
func (c *Controller) OnPrevPage() {
	if !c.catalog.PrevPage() {
		c.logger.Debug("prev page ignored at first page")
		return
	}
	c.scheduleUpdate("prev")
}

// OnNextPage implements view.NextPageHandler.
func (c *Controller) OnNextPage() {
	if !c.catalog.NextPage() {
		c.logger.Debug("next page ignored at last page")
		return
	}
	c.scheduleUpdate("next")
}

// OnImageClick implements view.ImageClickHandler. The id is looked up across
// the whole catalog; unknown ids are ignored.
func (c *Controller) OnImageClick(id int) {
	img, ok := c.catalog.FindByID(id)
	if !ok {
		c.logger.Debug("click on unknown image", "id", id)
		return
	}
	c.logger.Debug("open image", "id", id, "url", img.URL)
	c.presenter.ShowModal(img)
}

// ResetFilters clears the category and the search term.
func (c *Controller) ResetFilters() {
	c.catalog.SetCategory(catalog.AllCategories)
	c.catalog.SetSearch("")
	c.scheduleUpdate("reset")
}

// DetailedStats returns the current stats with pagination and page size.
func (c *Controller) DetailedStats() DetailedStats {
	return DetailedStats{
		Stats:          c.catalog.Stats(),
		PaginationInfo: c.catalog.PaginationInfo(),
		ImagesPerPage:  c.catalog.ImagesPerPage(),
	}
}

// AllImages returns every image in the catalog.
func (c *Controller) AllImages() []catalog.Image {
	return c.catalog.AllImages()
}

// FilteredImages returns the images matching the current filters.
func (c *Controller) FilteredImages() []catalog.Image {
	return c.catalog.FilteredImages()
}

// Updates reports how many update sequences have run. Like Scheduled it is
// a diagnostic counter for tracing debounce behaviour; it has no effect on
// the gallery.
func (c *Controller) Updates() int {
	return c.updates
}

// Scheduled reports how many update sequences have been queued. Each
// trigger queues one; Scheduled minus Updates is the number still pending.
func (c *Controller) Scheduled() int {
	return c.scheduled
}

func (c *Controller) scheduleUpdate(trigger string, keyvals ...interface{}) {
	c.scheduled++
	c.logger.Debug("update scheduled", append([]interface{}{"trigger", trigger}, keyvals...)...)
	c.sched.AfterFunc(anim.UpdateDelay, c.update)
}

// update reads the catalog at execution time, so a burst of triggers
// converges on the state left by the last one.
func (c *Controller) update() {
	c.updates++
	images := c.catalog.CurrentPageImages()
	info := c.catalog.PaginationInfo()
	stats := c.catalog.Stats()

	c.presenter.RenderGallery(images)
	c.presenter.UpdatePagination(info)
	c.presenter.UpdateCategoryButtons(c.catalog.CurrentCategory())
	c.presenter.UpdateSearchInput(c.catalog.CurrentSearch())
	c.presenter.ShowStats(stats)
	c.presenter.RevealCards(c.stagger)

	c.logger.Debug("gallery updated",
		"page", info.CurrentPage,
		"pages", info.TotalPages,
		"shown", len(images),
		"filtered", stats.FilteredImages)
}
