// Package keywords persists image keywords in a BoltDB database.
// Keywords are indexed both ways: image URL to keywords and keyword to
// image URLs.
package keywords

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName             = "fygallery_keywords.db"
	ImagesToKeywordsBucket = "ImagesToKeywords"
	KeywordsToImagesBucket = "KeywordsToImages"
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// Store manages the keyword database.
type Store struct {
	db     *bolt.DB
	logger LoggerFunc
}

// KeywordWithCount holds a keyword and the number of images carrying it.
type KeywordWithCount struct {
	Name  string
	Count int
}

// Open creates or opens the keyword database. dbPath may name the database
// file directly, a directory to hold it, or be empty to use the user config
// directory.
func Open(dbPath string, logger LoggerFunc) (*Store, error) {
	path, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger(fmt.Sprintf("Using keyword database at: %s", path))
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{ImagesToKeywordsBucket, KeywordsToImagesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

func resolvePath(dbPath string) (string, error) {
	if dbPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Warning: Could not get user config dir: %v. Using current dir.", err)
			return dbFileName, nil
		}
		dbPath = filepath.Join(configDir, "fygallery")
	}
	if filepath.Ext(dbPath) == ".db" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
		return dbPath, nil
	}
	if err := os.MkdirAll(dbPath, 0750); err != nil {
		return "", fmt.Errorf("failed to create database directory %s: %w", dbPath, err)
	}
	return filepath.Join(dbPath, dbFileName), nil
}

func (s *Store) logMessage(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func encodeList(list []string) ([]byte, error) {
	return json.Marshal(list)
}

func decodeList(data []byte) ([]string, error) {
	var list []string
	if data == nil {
		return []string{}, nil
	}
	err := json.Unmarshal(data, &list)
	return list, err
}

func addToList(list []string, item string) ([]string, bool) {
	for _, existing := range list {
		if existing == item {
			return list, false
		}
	}
	return append(list, item), true
}

func removeFromList(list []string, item string) []string {
	newList := list[:0]
	for _, existing := range list {
		if existing != item {
			newList = append(newList, existing)
		}
	}
	return newList
}

// updateList adds or removes item in the JSON list stored under key. A list
// emptied by a removal is deleted. It reports whether the list changed.
func updateList(tx *bolt.Tx, bucketName, key, item string, add bool) (bool, error) {
	bucket := tx.Bucket([]byte(bucketName))
	if bucket == nil {
		return false, fmt.Errorf("bucket %s not found", bucketName)
	}

	current, err := decodeList(bucket.Get([]byte(key)))
	if err != nil {
		return false, fmt.Errorf("failed to decode list for key '%s' in bucket '%s': %w", key, bucketName, err)
	}

	var updated []string
	var changed bool
	if add {
		updated, changed = addToList(current, item)
	} else {
		before := len(current)
		updated = removeFromList(current, item)
		changed = len(updated) != before
	}
	if !changed {
		return false, nil
	}

	if !add && len(updated) == 0 {
		if err := bucket.Delete([]byte(key)); err != nil {
			return true, fmt.Errorf("failed to delete empty list for key '%s' in bucket '%s': %w", key, bucketName, err)
		}
		return true, nil
	}
	data, err := encodeList(updated)
	if err != nil {
		return true, fmt.Errorf("failed to encode list for key '%s' in bucket '%s': %w", key, bucketName, err)
	}
	if err := bucket.Put([]byte(key), data); err != nil {
		return true, fmt.Errorf("failed to put list for key '%s' in bucket '%s': %w", key, bucketName, err)
	}
	return true, nil
}

func link(tx *bolt.Tx, imageURL, keyword string, add bool) error {
	if _, err := updateList(tx, ImagesToKeywordsBucket, imageURL, keyword, add); err != nil {
		return fmt.Errorf("updating image->keywords for '%s' with '%s': %w", imageURL, keyword, err)
	}
	if _, err := updateList(tx, KeywordsToImagesBucket, keyword, imageURL, add); err != nil {
		return fmt.Errorf("updating keyword->images for '%s' with '%s': %w", keyword, imageURL, err)
	}
	return nil
}

// Add associates keyword with an image.
func (s *Store) Add(imageURL, keyword string) error {
	if imageURL == "" || keyword == "" {
		return fmt.Errorf("image url and keyword cannot be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return link(tx, imageURL, keyword, true)
	})
}

// AddMany associates several keywords with an image in one transaction.
// Empty keywords are skipped.
func (s *Store) AddMany(imageURL string, keywords []string) error {
	if imageURL == "" || len(keywords) == 0 {
		return fmt.Errorf("image url and keywords cannot be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, k := range keywords {
			if k == "" {
				continue
			}
			if err := link(tx, imageURL, k, true); err != nil {
				return err
			}
		}
		return nil
	})
}

// Remove disassociates keyword from an image.
func (s *Store) Remove(imageURL, keyword string) error {
	if imageURL == "" || keyword == "" {
		return fmt.Errorf("image url and keyword cannot be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return link(tx, imageURL, keyword, false)
	})
}

// Get returns the sorted keywords of an image.
func (s *Store) Get(imageURL string) ([]string, error) {
	return s.readList(ImagesToKeywordsBucket, imageURL)
}

// Images returns the sorted image URLs carrying keyword.
func (s *Store) Images(keyword string) ([]string, error) {
	return s.readList(KeywordsToImagesBucket, keyword)
}

func (s *Store) readList(bucketName, key string) ([]string, error) {
	var list []string
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		list, err = decodeList(tx.Bucket([]byte(bucketName)).Get([]byte(key)))
		if err != nil {
			return fmt.Errorf("failed to decode %s entry %s: %w", bucketName, key, err)
		}
		return nil
	})
	sort.Strings(list)
	return list, err
}

// All returns every keyword with its image count, sorted by name.
func (s *Store) All() ([]KeywordWithCount, error) {
	var all []KeywordWithCount
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(KeywordsToImagesBucket)).ForEach(func(k, v []byte) error {
			images, err := decodeList(v)
			if err != nil {
				s.logMessage("Error decoding image list for keyword '%s', skipping: %v", string(k), err)
				return nil
			}
			all = append(all, KeywordWithCount{Name: string(k), Count: len(images)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// RemoveAllForImage drops every keyword of an image and its index entry.
func (s *Store) RemoveAllForImage(imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("image url cannot be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		imgBucket := tx.Bucket([]byte(ImagesToKeywordsBucket))
		data := imgBucket.Get([]byte(imageURL))
		if data == nil {
			return nil
		}
		current, err := decodeList(data)
		if err != nil {
			return fmt.Errorf("failed to decode keywords for image %s during cleanup: %w", imageURL, err)
		}
		for _, k := range current {
			if _, err := updateList(tx, KeywordsToImagesBucket, k, imageURL, false); err != nil {
				return fmt.Errorf("failed to remove image '%s' from keyword '%s': %w", imageURL, k, err)
			}
		}
		if err := imgBucket.Delete([]byte(imageURL)); err != nil {
			return fmt.Errorf("failed to delete image key %s: %w", imageURL, err)
		}
		return nil
	})
}

// DeleteOrphanedKey removes a keyword entry the caller knows to be unused.
func (s *Store) DeleteOrphanedKey(keyword string) error {
	if keyword == "" {
		return fmt.Errorf("keyword cannot be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(KeywordsToImagesBucket)).Delete([]byte(keyword)); err != nil {
			return fmt.Errorf("failed to delete orphaned keyword '%s': %w", keyword, err)
		}
		return nil
	})
}

// ImageURLs returns every image that has at least one keyword.
func (s *Store) ImageURLs() ([]string, error) {
	var urls []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ImagesToKeywordsBucket)).ForEach(func(k, _ []byte) error {
			urls = append(urls, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list image urls: %w", err)
	}
	return urls, nil
}
