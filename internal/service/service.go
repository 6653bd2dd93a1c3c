package service

import (
	"errors"
	"fmt"
	"strings"

	"fygallery/internal/keywords"
)

// KeywordStore abstracts the keyword DB for easier testing and decoupling.
type KeywordStore interface {
	Add(imageURL, keyword string) error
	AddMany(imageURL string, keywords []string) error
	Remove(imageURL, keyword string) error
	Get(imageURL string) ([]string, error)
	Images(keyword string) ([]string, error)
	All() ([]keywords.KeywordWithCount, error)
	RemoveAllForImage(imageURL string) error
	DeleteOrphanedKey(keyword string) error
	ImageURLs() ([]string, error)
	Close() error
}

// KeywordService is the business logic over the keyword store.
type KeywordService struct {
	Store  KeywordStore
	Logger func(string)
}

// NewKeywordService constructs a new KeywordService.
func NewKeywordService(store KeywordStore, logger func(string)) *KeywordService {
	if logger == nil {
		logger = func(string) {}
	}
	return &KeywordService{Store: store, Logger: logger}
}

// AddKeywords adds one or more keywords to an image.
func (s *KeywordService) AddKeywords(imageURL string, kws []string) error {
	if imageURL == "" || len(kws) == 0 {
		return errors.New("image url and keywords required")
	}
	return s.Store.AddMany(imageURL, kws)
}

// RemoveKeywords removes one or more keywords from an image.
func (s *KeywordService) RemoveKeywords(imageURL string, kws []string) error {
	if imageURL == "" || len(kws) == 0 {
		return errors.New("image url and keywords required")
	}
	for _, k := range kws {
		if err := s.Store.Remove(imageURL, k); err != nil {
			return err
		}
	}
	return nil
}

// ListKeywords returns all keywords for a given image.
func (s *KeywordService) ListKeywords(imageURL string) ([]string, error) {
	return s.Store.Get(imageURL)
}

// ListImagesForKeyword returns all images for a given keyword.
func (s *KeywordService) ListImagesForKeyword(keyword string) ([]string, error) {
	return s.Store.Images(keyword)
}

// ListAllKeywords returns all keywords with their image counts.
func (s *KeywordService) ListAllKeywords() ([]keywords.KeywordWithCount, error) {
	return s.Store.All()
}

// NormalizeAll lowercases every keyword in the store.
func (s *KeywordService) NormalizeAll() error {
	all, err := s.Store.All()
	if err != nil {
		return err
	}
	var firstErr error
	for _, kw := range all {
		lower := strings.ToLower(kw.Name)
		if lower == kw.Name {
			continue
		}
		if err := s.rename(kw.Name, lower); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReplaceKeyword replaces oldKeyword with newKeyword across all images.
func (s *KeywordService) ReplaceKeyword(oldKeyword, newKeyword string) error {
	if oldKeyword == "" || newKeyword == "" || oldKeyword == newKeyword {
		return errors.New("invalid keywords")
	}
	return s.rename(oldKeyword, newKeyword)
}

func (s *KeywordService) rename(from, to string) error {
	images, err := s.Store.Images(from)
	if err != nil {
		return fmt.Errorf("getting images for keyword '%s': %w", from, err)
	}
	var firstErr error
	for _, img := range images {
		if err := s.Store.Remove(img, from); err != nil {
			s.Logger(fmt.Sprintf("failed to remove keyword '%s' from '%s': %v", from, img, err))
			if firstErr == nil {
				firstErr = fmt.Errorf("removing keyword '%s' from '%s': %w", from, img, err)
			}
		}
		if err := s.Store.Add(img, to); err != nil {
			s.Logger(fmt.Sprintf("failed to add keyword '%s' to '%s': %v", to, img, err))
			if firstErr == nil {
				firstErr = fmt.Errorf("adding keyword '%s' to '%s': %w", to, img, err)
			}
		}
	}
	if err := s.Store.DeleteOrphanedKey(from); err != nil {
		s.Logger(fmt.Sprintf("failed to delete orphaned keyword '%s': %v", from, err))
	}
	return firstErr
}

// CleanUnknown removes keywords for images that are not in known and
// deletes keyword entries left without images.
func (s *KeywordService) CleanUnknown(known []string) (imagesCleaned, keywordsCleaned int, err error) {
	isKnown := make(map[string]bool, len(known))
	for _, url := range known {
		isKnown[url] = true
	}

	urls, err := s.Store.ImageURLs()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get image urls: %w", err)
	}
	for _, url := range urls {
		if isKnown[url] {
			continue
		}
		if err := s.Store.RemoveAllForImage(url); err != nil {
			s.Logger(fmt.Sprintf("Error removing keywords for unknown image %s: %v", url, err))
			continue
		}
		imagesCleaned++
	}

	all, err := s.Store.All()
	if err != nil {
		return imagesCleaned, 0, fmt.Errorf("failed to get all keywords: %w", err)
	}
	for _, kw := range all {
		if kw.Count > 0 {
			continue
		}
		if err := s.Store.DeleteOrphanedKey(kw.Name); err != nil {
			s.Logger(fmt.Sprintf("Error removing orphaned keyword '%s': %v", kw.Name, err))
			continue
		}
		keywordsCleaned++
	}
	return imagesCleaned, keywordsCleaned, nil
}
