package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fygallery/internal/catalog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]clog.Level{
		"debug":   clog.DebugLevel,
		"INFO":    clog.InfoLevel,
		"warn":    clog.WarnLevel,
		"warning": clog.WarnLevel,
		" error ": clog.ErrorLevel,
		"":        clog.InfoLevel,
		"verbose": clog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
	assert.True(t, ValidLevel("Warning"))
	assert.False(t, ValidLevel("verbose"))
}

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: "json", Output: &buf})
	logger.Debug("scan done", "images", 4)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "scan done", entry["msg"])
	assert.EqualValues(t, 4, entry["images"])
}

func TestFunc(t *testing.T) {
	var buf bytes.Buffer
	log := Func(New(Options{Output: &buf}))
	log("Scanning photos")
	assert.Contains(t, buf.String(), "Scanning photos")
}

func TestStatsSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStatsSink(New(Options{Level: "debug", Output: &buf}))

	stats := catalog.Stats{
		TotalImages:    6,
		FilteredImages: 2,
		Categories:     map[string]int{"nature": 4, "animals": 2},
		UniqueKeywords: 5,
	}
	sink.ReportStats(stats)

	assert.Equal(t, 1, sink.Reports())
	assert.Equal(t, stats, sink.Last())
	out := buf.String()
	assert.Contains(t, out, "gallery stats")
	assert.Contains(t, out, "filtered=2")
	assert.Less(t, strings.Index(out, "category.animals"), strings.Index(out, "category.nature"))
}

func TestStatsSinkNilLogger(t *testing.T) {
	sink := NewStatsSink(nil)
	sink.ReportStats(catalog.Stats{TotalImages: 1})
	assert.Equal(t, 1, sink.Last().TotalImages)
}
