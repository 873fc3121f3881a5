// Package catalog defines the immutable item model the gallery is built on.
// Items are loaded once at startup and never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MediaKind discriminates how an item's media reference should be presented.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Item represents one catalog entry. The JSON field names match the static
// catalog document shipped with the site.
type Item struct {
	ID         string    `json:"id"`
	Src        string    `json:"src"`
	Title      string    `json:"title,omitempty"`
	Creator    string    `json:"creator,omitempty"`
	CreditURL  string    `json:"credit_url,omitempty"`
	Year       string    `json:"year,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Type       MediaKind `json:"type,omitempty"`
}

// Facets holds the derived distinct category and tag values, lexically sorted
// so checkbox lists render in a deterministic order.
type Facets struct {
	Categories []string
	Tags       []string
}

// Domain errors
var (
	ErrInvalidItem  = errors.New("invalid catalog item")
	ErrItemNotFound = errors.New("catalog item not found")
)

const (
	MaxTitleLen = 512
	MaxLabelLen = 100
)

// Kind returns the media kind, defaulting to image when the discriminant is
// absent or unrecognized.
func (i Item) Kind() MediaKind {
	if i.Type == MediaVideo {
		return MediaVideo
	}
	return MediaImage
}

// RecencyKey extracts the numeric suffix after the last '-' in the item ID.
// An ID without the delimiter, or with a non-numeric suffix, yields 0 so that
// malformed identifiers sort as oldest. This is an intentional tie-break.
func (i Item) RecencyKey() int {
	idx := strings.LastIndexByte(i.ID, '-')
	if idx < 0 || idx == len(i.ID)-1 {
		return 0
	}
	n, err := strconv.Atoi(i.ID[idx+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// HasCategory reports whether the item carries the given category label.
func (i Item) HasCategory(label string) bool {
	return contains(i.Categories, label)
}

// HasTag reports whether the item carries the given tag label.
func (i Item) HasTag(label string) bool {
	return contains(i.Tags, label)
}

// SearchText returns the lower-cased concatenation of the fields the free-text
// filter matches against.
func (i Item) SearchText() string {
	parts := make([]string, 0, 2+len(i.Categories)+len(i.Tags))
	parts = append(parts, i.Title, i.Creator)
	parts = append(parts, i.Categories...)
	parts = append(parts, i.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// DisplayTitle returns the title or a placeholder when the item has none.
func (i Item) DisplayTitle() string {
	if i.Title == "" {
		return "Untitled"
	}
	return i.Title
}

// DisplayCreator returns the creator or a placeholder when the item has none.
func (i Item) DisplayCreator() string {
	if i.Creator == "" {
		return "Unknown"
	}
	return i.Creator
}

// DisplayYear returns the year or a placeholder when the item has none.
func (i Item) DisplayYear() string {
	if i.Year == "" {
		return "Unknown"
	}
	return i.Year
}

// Validate checks the structural invariants of a loaded item.
func (i Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidItem)
	}
	if !utf8.ValidString(i.ID) {
		return fmt.Errorf("%w: id contains invalid UTF-8", ErrInvalidItem)
	}
	if i.Src == "" {
		return fmt.Errorf("%w: %s has no media reference", ErrInvalidItem, i.ID)
	}
	if len(i.Title) > MaxTitleLen {
		return fmt.Errorf("%w: %s title too long (max %d)", ErrInvalidItem, i.ID, MaxTitleLen)
	}
	if i.Type != "" && i.Type != MediaImage && i.Type != MediaVideo {
		return fmt.Errorf("%w: %s has unknown media kind %q", ErrInvalidItem, i.ID, i.Type)
	}
	for _, label := range i.Categories {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("%w: %s category: %v", ErrInvalidItem, i.ID, err)
		}
	}
	for _, label := range i.Tags {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("%w: %s tag: %v", ErrInvalidItem, i.ID, err)
		}
	}
	return nil
}

func validateLabel(label string) error {
	if label == "" {
		return errors.New("label cannot be empty")
	}
	if len(label) > MaxLabelLen {
		return fmt.Errorf("label too long (max %d)", MaxLabelLen)
	}
	if !utf8.ValidString(label) {
		return errors.New("label contains invalid UTF-8")
	}
	return nil
}

// BuildFacets derives the sorted distinct category and tag sets from the item
// list.
func BuildFacets(items []Item) Facets {
	cats := map[string]struct{}{}
	tags := map[string]struct{}{}
	for _, it := range items {
		for _, c := range it.Categories {
			cats[c] = struct{}{}
		}
		for _, t := range it.Tags {
			tags[t] = struct{}{}
		}
	}
	return Facets{
		Categories: sortedKeys(cats),
		Tags:       sortedKeys(tags),
	}
}

// HasCategory reports whether the derived category set contains the value.
func (f Facets) HasCategory(label string) bool {
	return contains(f.Categories, label)
}

// HasTag reports whether the derived tag set contains the value.
func (f Facets) HasTag(label string) bool {
	return contains(f.Tags, label)
}

// Find returns the item with the given identifier.
func Find(items []Item, id string) (Item, error) {
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
