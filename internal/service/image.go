// Package service holds the keyword and image services shared by the GUI
// and the CLI.
package service

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifFields are the EXIF tags surfaced in the modal detail line.
var exifFields = []exif.FieldName{exif.Make, exif.Model, exif.DateTime, exif.FNumber, exif.ExposureTime}

// ImageInfo holds metadata about an image file.
type ImageInfo struct {
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// DetailLine renders the dimensions and camera model for display.
func (info *ImageInfo) DetailLine() string {
	if info == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("%d × %d px", info.Width, info.Height)}
	// goexif quotes string tags
	var camera []string
	for _, f := range []exif.FieldName{exif.Make, exif.Model} {
		if v := strings.Trim(info.EXIFData[string(f)], `"`); v != "" {
			camera = append(camera, v)
		}
	}
	if len(camera) > 0 {
		parts = append(parts, strings.Join(camera, " "))
	}
	return strings.Join(parts, " · ")
}

// ImageService decodes local image files and extracts their metadata.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// GetEXIF extracts a few common EXIF fields. Images without EXIF yield an
// empty map and no error.
func (is *ImageService) GetEXIF(r io.Reader) map[string]string {
	result := make(map[string]string)
	x, err := exif.Decode(r)
	if err != nil {
		return result
	}
	for _, field := range exifFields {
		tag, err := x.Get(field)
		if err == nil && tag != nil {
			result[string(field)] = tag.String()
		}
	}
	return result
}

// GetImageInfo opens path, decodes it and returns its metadata alongside
// the decoded image.
func (is *ImageService) GetImageInfo(path string) (*ImageInfo, image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image for info: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	exifData := is.GetEXIF(f)
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("failed to seek in image file: %w", err)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image for info: %w", err)
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Size:     fi.Size(),
		ModTime:  fi.ModTime(),
		EXIFData: exifData,
	}, img, nil
}
