package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"fygallery/internal/logging"
)

var logFormats = map[string]bool{"text": true, "json": true}

// Validate replaces invalid values with their defaults, reporting each one.
func (c *Config) Validate(warn func(string)) {
	def := Default()

	positive := func(key string, v *int, d int) {
		if *v <= 0 {
			warn(fmt.Sprintf("invalid %s value '%d': must be a positive integer, using default: %d", key, *v, d))
			*v = d
		}
	}
	positive("images_per_page", &c.ImagesPerPage, def.ImagesPerPage)
	positive("window_width", &c.WindowWidth, def.WindowWidth)
	positive("window_height", &c.WindowHeight, def.WindowHeight)

	if !logging.ValidLevel(c.LogLevel) {
		warn(fmt.Sprintf("invalid log_level value '%s': must be one of: debug, error, info, warn; using default: %s", c.LogLevel, def.LogLevel))
		c.LogLevel = def.LogLevel
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	format := strings.ToLower(strings.TrimSpace(c.LogFormat))
	if !logFormats[format] {
		warn(fmt.Sprintf("invalid log_format value '%s': must be one of: %s; using default: %s", c.LogFormat, allowedValues(logFormats), def.LogFormat))
		format = def.LogFormat
	}
	c.LogFormat = format

	include := c.Include[:0:0]
	for _, p := range c.Include {
		if _, err := glob.Compile(strings.ToLower(p)); err != nil {
			warn(fmt.Sprintf("invalid include pattern '%s': %v; skipping", p, err))
			continue
		}
		include = append(include, p)
	}
	c.Include = include

	c.Categories = dedupe(c.Categories)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func allowedValues(allowed map[string]bool) string {
	keys := make([]string, 0, len(allowed))
	for k := range allowed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
