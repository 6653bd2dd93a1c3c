package catalog

import (
	"sort"
	"strings"
	"sync"
)

// DefaultImagesPerPage is used when a catalog is created without a page size.
const DefaultImagesPerPage = 9

// PaginationInfo describes the current page position.
type PaginationInfo struct {
	CurrentPage int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
}

// Stats aggregates the collection and the current filter.
type Stats struct {
	TotalImages    int
	FilteredImages int
	Categories     map[string]int // images per category over the whole collection
	UniqueKeywords int
}

// Catalog owns the collection and the query state. The query is only ever
// changed through its setters and page moves.
type Catalog struct {
	mu       sync.RWMutex
	images   []Image
	perPage  int
	search   string
	category string
	page     int
}

// New creates a catalog over images with the default query: empty search,
// category "all", page 1.
func New(images []Image, perPage int) *Catalog {
	if perPage <= 0 {
		perPage = DefaultImagesPerPage
	}
	owned := make([]Image, len(images))
	copy(owned, images)
	return &Catalog{
		images:   owned,
		perPage:  perPage,
		category: AllCategories,
		page:     1,
	}
}

// SetSearch stores term verbatim and returns to the first page.
func (c *Catalog) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
	c.page = 1
}

// SetCategory stores category verbatim and returns to the first page.
// A value matching no image is accepted and yields an empty result.
func (c *Catalog) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
	c.page = 1
}

// PrevPage moves one page back. It returns false on the first page.
func (c *Catalog) PrevPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page <= 1 {
		return false
	}
	c.page--
	return true
}

// NextPage moves one page forward. It returns false on the last page.
func (c *Catalog) NextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page >= c.totalPages(len(c.filtered())) {
		return false
	}
	c.page++
	return true
}

// AllImages returns the whole collection.
func (c *Catalog) AllImages() []Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Image, len(c.images))
	copy(out, c.images)
	return out
}

// FilteredImages returns every image matching the current search and category.
func (c *Catalog) FilteredImages() []Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filtered()
}

// CurrentPageImages returns the slice of filtered images on the current page.
func (c *Catalog) CurrentPageImages() []Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	filtered := c.filtered()
	page := c.clampedPage(len(filtered))
	start := (page - 1) * c.perPage
	if start >= len(filtered) {
		return []Image{}
	}
	end := start + c.perPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// PaginationInfo reports the page position for the current query.
func (c *Catalog) PaginationInfo() PaginationInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.filtered())
	total := c.totalPages(n)
	page := c.clampedPage(n)
	return PaginationInfo{
		CurrentPage: page,
		TotalPages:  total,
		HasPrevPage: page > 1,
		HasNextPage: page < total,
	}
}

// Stats computes aggregate counts.
func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := Stats{
		TotalImages:    len(c.images),
		FilteredImages: len(c.filtered()),
		Categories:     make(map[string]int),
	}
	keywords := make(map[string]struct{})
	for _, img := range c.images {
		for _, cat := range img.Categories {
			stats.Categories[cat]++
		}
		for _, k := range img.Keywords {
			keywords[strings.ToLower(k)] = struct{}{}
		}
	}
	stats.UniqueKeywords = len(keywords)
	return stats
}

// CurrentCategory returns the active category filter.
func (c *Catalog) CurrentCategory() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.category
}

// CurrentSearch returns the active search term as it was set.
func (c *Catalog) CurrentSearch() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.search
}

// CurrentPage returns the 1-based page index.
func (c *Catalog) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// ImagesPerPage returns the page size.
func (c *Catalog) ImagesPerPage() int {
	return c.perPage
}

// Categories returns the sorted, distinct category identifiers in the collection.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, img := range c.images {
		for _, cat := range img.Categories {
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			out = append(out, cat)
		}
	}
	sort.Strings(out)
	return out
}

// FindByID looks an image up across the whole collection.
func (c *Catalog) FindByID(id int) (Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, img := range c.images {
		if img.ID == id {
			return img, true
		}
	}
	return Image{}, false
}

func (c *Catalog) filtered() []Image {
	needle := strings.ToLower(strings.TrimSpace(c.search))
	out := make([]Image, 0, len(c.images))
	for _, img := range c.images {
		if c.category != AllCategories && !img.HasCategory(c.category) {
			continue
		}
		if !img.matches(needle) {
			continue
		}
		out = append(out, img)
	}
	return out
}

func (c *Catalog) totalPages(n int) int {
	if n == 0 {
		return 1
	}
	return (n + c.perPage - 1) / c.perPage
}

func (c *Catalog) clampedPage(n int) int {
	total := c.totalPages(n)
	switch {
	case c.page < 1:
		return 1
	case c.page > total:
		return total
	default:
		return c.page
	}
}
