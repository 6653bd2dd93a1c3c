// Package config loads gallery settings: defaults, then a TOML file, then
// FYGALLERY_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"fygallery/internal/catalog"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FYGALLERY_"

// FileModeDir and FileModeFile are used when writing a sample config.
const (
	FileModeDir  os.FileMode = 0755
	FileModeFile os.FileMode = 0644
)

// Config holds every gallery setting.
type Config struct {
	ImagesPerPage int      `toml:"images_per_page"`
	Manifest      string   `toml:"manifest"`
	Root          string   `toml:"root"`
	Include       []string `toml:"include"`
	KeywordsDB    string   `toml:"keywords_db"`
	LogLevel      string   `toml:"log_level"`
	LogFormat     string   `toml:"log_format"`
	Categories    []string `toml:"categories"`
	WindowWidth   int      `toml:"window_width"`
	WindowHeight  int      `toml:"window_height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ImagesPerPage: catalog.DefaultImagesPerPage,
		LogLevel:      "info",
		LogFormat:     "text",
		WindowWidth:   1024,
		WindowHeight:  768,
	}
}

// Path returns the config file location: $FYGALLERY_CONFIG if set, else
// config.toml under the user config directory.
func Path() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "fygallery", "config.toml")
}

// Load reads path (a missing file is not an error), applies environment
// overrides and validates the result. warn receives one message per value
// replaced by its default; it may be nil.
func Load(path string, warn func(string)) (Config, error) {
	if warn == nil {
		warn = func(string) {}
	}
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := cfg.decode(data); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv(os.Getenv, warn)
	cfg.Validate(warn)
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates it. Environment
// overrides are not applied.
func Parse(data []byte, warn func(string)) (Config, error) {
	if warn == nil {
		warn = func(string) {}
	}
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return cfg, err
	}
	cfg.Validate(warn)
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	return dec.Decode(c)
}

func (c *Config) applyEnv(getenv func(string) string, warn func(string)) {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = splitList(v)
		}
	}
	num := func(key string, dst *int) {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			warn(fmt.Sprintf("invalid %s%s value '%s': must be an integer, ignoring", EnvPrefix, key, v))
			return
		}
		*dst = n
	}

	num("IMAGES_PER_PAGE", &c.ImagesPerPage)
	str("MANIFEST", &c.Manifest)
	str("ROOT", &c.Root)
	list("INCLUDE", &c.Include)
	str("KEYWORDS_DB", &c.KeywordsDB)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	list("CATEGORIES", &c.Categories)
	num("WINDOW_WIDTH", &c.WindowWidth)
	num("WINDOW_HEIGHT", &c.WindowHeight)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Write saves cfg as TOML, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, FileModeFile); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
