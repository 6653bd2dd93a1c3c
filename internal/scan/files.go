// Package scan builds a catalog collection from the images under a directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fygallery/internal/catalog"

	"github.com/gobwas/glob"
)

// UncategorizedCategory is assigned to images sitting directly in the root.
const UncategorizedCategory = "uncategorized"

// LoggerFunc receives progress and warning messages.
type LoggerFunc func(message string)

// Options controls which files are picked up.
type Options struct {
	// Include holds glob patterns matched against the lowercased base name.
	// When empty, IsImage decides.
	Include []string
}

// FileItem is a discovered image file.
type FileItem struct {
	Path string
	Info os.FileInfo
}

// FileItems is a slice of FileItem
type FileItems []FileItem

// NewFileItem creates a new FileItem
func NewFileItem(p string, info os.FileInfo) FileItem {
	return FileItem{
		Path: p,
		Info: info,
	}
}

// Scanner walks directories for images.
type Scanner struct {
	patterns []glob.Glob
}

// NewScanner compiles the include patterns.
func NewScanner(opts Options) (*Scanner, error) {
	s := &Scanner{}
	for _, p := range opts.Include {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		s.patterns = append(s.patterns, g)
	}
	return s, nil
}

func (s *Scanner) accepts(name string) bool {
	if len(s.patterns) == 0 {
		return IsImage(name)
	}
	lower := strings.ToLower(filepath.Base(name))
	for _, g := range s.patterns {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// Files returns every accepted, non-empty file under root, sorted by path.
func (s *Scanner) Files(root string, logger LoggerFunc) (FileItems, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	var items FileItems
	err = filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			if logger != nil {
				logger(fmt.Sprintf("skipping %s: %v", p, err))
			}
			if fi != nil && fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.Mode().IsRegular() && fi.Size() > 0 && s.accepts(p) {
			items = append(items, NewFileItem(p, fi))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// Images scans root and turns each file into a catalog image. Ids follow
// the sorted path order starting at 1; the category is the first directory
// below root.
func (s *Scanner) Images(root string, logger LoggerFunc) ([]catalog.Image, error) {
	items, err := s.Files(root, logger)
	if err != nil {
		return nil, err
	}
	absRoot, _ := filepath.Abs(root)
	images := make([]catalog.Image, 0, len(items))
	for i, item := range items {
		images = append(images, catalog.Image{
			ID:         i + 1,
			URL:        item.Path,
			Title:      titleFromPath(item.Path),
			Categories: catalog.Categories{categoryFromPath(absRoot, item.Path)},
		})
	}
	if logger != nil {
		logger(fmt.Sprintf("found %d images under %s", len(images), absRoot))
	}
	return images, nil
}

// Run scans root with the given options.
func Run(root string, opts Options, logger LoggerFunc) ([]catalog.Image, error) {
	s, err := NewScanner(opts)
	if err != nil {
		return nil, err
	}
	return s.Images(root, logger)
}

// IsImage checks if a file is an image
func IsImage(n string) bool {
	switch strings.ToLower(filepath.Ext(n)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	default:
		return false
	}
}

func titleFromPath(p string) string {
	stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	return strings.NewReplacer("-", " ", "_", " ").Replace(stem)
}

func categoryFromPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return UncategorizedCategory
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return UncategorizedCategory
	}
	return parts[0]
}
