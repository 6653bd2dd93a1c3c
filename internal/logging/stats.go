package logging

import (
	"sort"

	clog "github.com/charmbracelet/log"

	"fygallery/internal/catalog"
)

// StatsSink reports gallery statistics as structured log entries.
type StatsSink struct {
	logger *clog.Logger
	last   catalog.Stats
	count  int
}

// NewStatsSink creates a sink writing to logger at debug level.
func NewStatsSink(logger *clog.Logger) *StatsSink {
	if logger == nil {
		logger = Discard()
	}
	return &StatsSink{logger: logger}
}

// ReportStats implements view.StatsSink.
func (s *StatsSink) ReportStats(stats catalog.Stats) {
	s.last = stats
	s.count++

	keyvals := []interface{}{
		"total", stats.TotalImages,
		"filtered", stats.FilteredImages,
		"keywords", stats.UniqueKeywords,
	}
	names := make([]string, 0, len(stats.Categories))
	for name := range stats.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keyvals = append(keyvals, "category."+name, stats.Categories[name])
	}
	s.logger.Debug("gallery stats", keyvals...)
}

// Last returns the most recent report.
func (s *StatsSink) Last() catalog.Stats {
	return s.last
}

// Reports returns the number of reports received.
func (s *StatsSink) Reports() int {
	return s.count
}
