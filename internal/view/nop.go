package view

import (
	"fygallery/internal/anim"
	"fygallery/internal/catalog"
)

type nopGallery struct{}

func (nopGallery) SetFade(anim.Fade)                              {}
func (nopGallery) ShowPlaceholder(string, string)                 {}
func (nopGallery) ShowCards(_ []CardModel, _ func(id int)) []Card { return nil }

type nopSearch struct{ text string }

func (s *nopSearch) Text() string     { return s.text }
func (s *nopSearch) SetText(t string) { s.text = t }

type nopPager struct{}

func (nopPager) SetPageText(string)  {}
func (nopPager) SetPrevEnabled(bool) {}
func (nopPager) SetNextEnabled(bool) {}

type nopModal struct{}

func (nopModal) SetImage(string, string) {}
func (nopModal) SetKeywords([]string)    {}
func (nopModal) SetVisible(bool)         {}
func (nopModal) FocusClose()             {}

type nopScroll struct{}

func (nopScroll) SetScrollLocked(bool) {}

type nopStats struct{}

func (nopStats) ReportStats(catalog.Stats) {}

func withDefaults(el Elements) Elements {
	if el.Gallery == nil {
		el.Gallery = nopGallery{}
	}
	if el.Search == nil {
		el.Search = &nopSearch{}
	}
	if el.Pager == nil {
		el.Pager = nopPager{}
	}
	if el.Modal == nil {
		el.Modal = nopModal{}
	}
	if el.Page == nil {
		el.Page = nopScroll{}
	}
	if el.Stats == nil {
		el.Stats = nopStats{}
	}
	return el
}
