package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/nfnt/resize"

	"fygallery/internal/service"
)

const (
	// ThumbnailWidth is the width of a card thumbnail.
	ThumbnailWidth = 220
	// ThumbnailHeight is the height of a card thumbnail.
	ThumbnailHeight = 160
)

// ThumbnailManager handles generation and caching of card thumbnails.
type ThumbnailManager struct {
	cache      map[string]fyne.Resource
	cacheMutex sync.RWMutex
	images     *service.ImageService
	logger     func(string)
	async      bool
}

// NewThumbnailManager creates a new thumbnail manager.
func NewThumbnailManager(images *service.ImageService, logger func(string)) *ThumbnailManager {
	if logger == nil {
		logger = func(string) {}
	}
	return &ThumbnailManager{
		cache:  make(map[string]fyne.Resource),
		images: images,
		logger: logger,
		async:  true,
	}
}

// isRemote reports whether loc is an http(s) URL rather than a local path.
func isRemote(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}

// imageToBytes is a helper to convert image.Image to []byte for Fyne resources.
func imageToBytes(img image.Image) []byte {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func (tm *ThumbnailManager) decode(loc string) (image.Image, error) {
	if isRemote(loc) {
		res, err := fyne.LoadResourceFromURLString(loc)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(res.Content()))
		return img, err
	}
	_, img, err := tm.images.GetImageInfo(loc)
	return img, err
}

// GetThumbnail returns a cached thumbnail for loc, or a placeholder icon
// while the thumbnail is generated; onComplete then receives the result on
// the UI goroutine.
func (tm *ThumbnailManager) GetThumbnail(loc string, onComplete func(fyne.Resource)) fyne.Resource {
	if loc == "" {
		return theme.BrokenImageIcon()
	}
	if res, ok := tm.cached(loc); ok {
		return res
	}
	if !tm.async {
		if res, ok := tm.generate(loc); ok {
			return res
		}
		return theme.BrokenImageIcon()
	}
	go func() {
		if res, ok := tm.generate(loc); ok && onComplete != nil {
			fyne.Do(func() { onComplete(res) })
		}
	}()
	return theme.FileImageIcon()
}

func (tm *ThumbnailManager) generate(loc string) (fyne.Resource, bool) {
	decoded, err := tm.decode(loc)
	if err != nil {
		tm.logger(fmt.Sprintf("Thumbnail error for %s: %v", path.Base(loc), err))
		return nil, false
	}
	thumb := resize.Thumbnail(ThumbnailWidth, ThumbnailHeight, decoded, resize.Lanczos3)
	thumbBytes := imageToBytes(thumb)
	if thumbBytes == nil {
		return nil, false
	}
	res := fyne.NewStaticResource(path.Base(loc), thumbBytes)

	tm.cacheMutex.Lock()
	tm.cache[loc] = res
	tm.cacheMutex.Unlock()
	return res, true
}

func (tm *ThumbnailManager) cached(loc string) (fyne.Resource, bool) {
	tm.cacheMutex.RLock()
	defer tm.cacheMutex.RUnlock()
	res, ok := tm.cache[loc]
	return res, ok
}
