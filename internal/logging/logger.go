// Package logging builds the structured loggers used by the gallery
// binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	// Level is the minimum level to record: debug, info, warn or error.
	Level string
	// Format is "text" or "json".
	Format string
	// Output defaults to stderr.
	Output io.Writer
	// Prefix is prepended to every line.
	Prefix string
}

// New creates a charmbracelet logger from opts.
func New(opts Options) *clog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger := clog.NewWithOptions(out, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
	})
	if strings.EqualFold(opts.Format, "json") {
		logger.SetFormatter(clog.JSONFormatter)
	}
	return logger
}

// Discard returns a logger that writes nothing.
func Discard() *clog.Logger {
	return clog.New(io.Discard)
}

// ParseLevel converts a level name to a clog.Level. Unknown names map to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

// ValidLevel reports whether level names a known level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Func adapts logger to the plain message callbacks taken by the scanner
// and the keyword store.
func Func(logger *clog.Logger) func(string) {
	return func(msg string) {
		logger.Info(msg)
	}
}
