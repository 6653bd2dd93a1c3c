package ui

import (
	"fmt"

	"fyne.io/fyne/v2/widget"

	"fygallery/internal/catalog"
	"fygallery/internal/logging"
	"fygallery/internal/view"
)

// statsLine shows a one-line collection summary and forwards every report
// to the structured log sink.
type statsLine struct {
	label *widget.Label
	sink  *logging.StatsSink
}

var _ view.StatsSink = (*statsLine)(nil)

func (s *statsLine) ReportStats(stats catalog.Stats) {
	s.label.SetText(fmt.Sprintf("%d of %d images | %d keywords", stats.FilteredImages, stats.TotalImages, stats.UniqueKeywords))
	s.sink.ReportStats(stats)
}
