// Package catalog holds the image collection and the current query
// (search term, category, page) that selects the visible subset.
package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// AllCategories is the category sentinel that matches every image.
const AllCategories = "all"

// Image is one entry of the collection.
type Image struct {
	ID         int        `yaml:"id"`
	URL        string     `yaml:"url"`
	Title      string     `yaml:"title"`
	Categories Categories `yaml:"category"`
	Keywords   []string   `yaml:"keywords"`
}

// Categories accepts either a single category or a list of them in YAML.
type Categories []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Categories) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		if single == "" {
			*c = nil
			return nil
		}
		*c = Categories{single}
		return nil
	default:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*c = Categories(many)
		return nil
	}
}

// HasCategory reports whether the image belongs to category.
func (img Image) HasCategory(category string) bool {
	for _, c := range img.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryLabel renders the categories for display: each one capitalized,
// joined with ", ".
func (img Image) CategoryLabel() string {
	labels := make([]string, 0, len(img.Categories))
	for _, c := range img.Categories {
		labels = append(labels, CategoryTitle(c))
	}
	return strings.Join(labels, ", ")
}

// matches reports whether the lowercased needle occurs in the title,
// a category or a keyword.
func (img Image) matches(needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(img.Title), needle) {
		return true
	}
	for _, c := range img.Categories {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	for _, k := range img.Keywords {
		if strings.Contains(strings.ToLower(k), needle) {
			return true
		}
	}
	return false
}

// CategoryTitle upper-cases the first letter of a category identifier.
func CategoryTitle(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
