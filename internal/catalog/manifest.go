package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk description of a collection.
type Manifest struct {
	Images []Image `yaml:"images"`
}

// LoadManifest reads a YAML manifest. Relative, non-URL image locations are
// resolved against the manifest's directory.
func LoadManifest(path string) ([]Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	images, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range images {
		images[i].URL = resolveLocation(base, images[i].URL)
	}
	return images, nil
}

// ParseManifest decodes a manifest and validates image ids.
func ParseManifest(r io.Reader) ([]Image, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			return []Image{}, nil
		}
		return nil, err
	}
	seen := make(map[int]bool, len(m.Images))
	for _, img := range m.Images {
		if img.ID <= 0 {
			return nil, fmt.Errorf("image %q has invalid id %d", img.Title, img.ID)
		}
		if seen[img.ID] {
			return nil, fmt.Errorf("duplicate image id %d", img.ID)
		}
		seen[img.ID] = true
	}
	return m.Images, nil
}

// MergeKeywords appends keywords returned by lookup to each image, skipping
// ones it already carries. Manifest keywords keep their position.
func MergeKeywords(images []Image, lookup func(url string) ([]string, error)) error {
	for i := range images {
		stored, err := lookup(images[i].URL)
		if err != nil {
			return fmt.Errorf("failed to look up keywords for %s: %w", images[i].URL, err)
		}
		have := make(map[string]bool, len(images[i].Keywords))
		for _, k := range images[i].Keywords {
			have[k] = true
		}
		for _, k := range stored {
			if !have[k] {
				images[i].Keywords = append(images[i].Keywords, k)
				have[k] = true
			}
		}
	}
	return nil
}

func resolveLocation(base, loc string) string {
	if loc == "" || strings.Contains(loc, "://") || filepath.IsAbs(loc) {
		return loc
	}
	return filepath.Join(base, loc)
}
