package service

import (
	"errors"
	"fmt"

	"fygallery/internal/catalog"
	"fygallery/internal/scan"
)

// ErrNoSource is returned when neither a manifest nor a root is given.
var ErrNoSource = errors.New("no image source: set a manifest or a root directory")

// LibraryOptions selects where the gallery images come from.
type LibraryOptions struct {
	Manifest string   // YAML manifest; wins over Root
	Root     string   // directory scanned when no manifest is set
	Include  []string // glob patterns for the scan
}

// Library loads the image collection and decorates it with stored keywords.
type Library struct {
	Keywords *KeywordService // optional
	Logger   func(string)
}

// NewLibrary creates a loader. kw may be nil.
func NewLibrary(kw *KeywordService, logger func(string)) *Library {
	if logger == nil {
		logger = func(string) {}
	}
	return &Library{Keywords: kw, Logger: logger}
}

// Load reads the images described by opts. Keywords stored for an image's
// URL are appended to the ones it already carries.
func (l *Library) Load(opts LibraryOptions) ([]catalog.Image, error) {
	var (
		images []catalog.Image
		err    error
	)
	switch {
	case opts.Manifest != "":
		images, err = catalog.LoadManifest(opts.Manifest)
		if err == nil {
			l.Logger(fmt.Sprintf("loaded %d images from %s", len(images), opts.Manifest))
		}
	case opts.Root != "":
		images, err = scan.Run(opts.Root, scan.Options{Include: opts.Include}, scan.LoggerFunc(l.Logger))
	default:
		return nil, ErrNoSource
	}
	if err != nil {
		return nil, err
	}

	if l.Keywords != nil && l.Keywords.Store != nil {
		if err := catalog.MergeKeywords(images, l.Keywords.ListKeywords); err != nil {
			return nil, fmt.Errorf("failed to merge stored keywords: %w", err)
		}
	}
	return images, nil
}

// URLs returns the location of every image, in order.
func URLs(images []catalog.Image) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.URL)
	}
	return out
}
