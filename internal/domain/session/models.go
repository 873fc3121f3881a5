// Package session models the mutable per-session gallery state: filter
// criteria, view state, freeform positions, and the preference subset that is
// persisted across sessions and mirrored into the URL.
package session

import (
	"fmt"

	"thesis-gallery/internal/domain/catalog"
)

// Logic is the AND/OR rule applied uniformly to category and tag matching.
type Logic string

const (
	LogicOr  Logic = "or"
	LogicAnd Logic = "and"
)

// SortDirection orders the visible set by recency key.
type SortDirection string

const (
	SortNewest SortDirection = "newest"
	SortOldest SortDirection = "oldest"
)

// ViewMode selects how the grid container lays out cards.
type ViewMode string

const (
	ModeGrid     ViewMode = "grid"
	ModeFreeform ViewMode = "mess"
	ModeStacked  ViewMode = "stacked"
)

// Column bounds for the slider.
const (
	MinColumns = 1
	MaxColumns = 8
)

// Persisted storage keys. The positions key carries a version suffix so a
// future layout change can rotate to a fresh key instead of migrating data.
const (
	PreferencesKey = "uiPrefs"
	PositionsKey   = "messPositions-v1"
)

// FacetKind distinguishes the two filterable label sets.
type FacetKind string

const (
	FacetCategory FacetKind = "categories"
	FacetTag      FacetKind = "tags"
)

// Criteria is the full filter state fed to the filter engine.
type Criteria struct {
	Query      string        `json:"q"`
	Categories []string      `json:"categories"`
	Tags       []string      `json:"tags"`
	Logic      Logic         `json:"logic"`
	Sort       SortDirection `json:"dateSort"`
}

// ViewState is the layout side of the session.
type ViewState struct {
	Mode    ViewMode `json:"mode"`
	Columns int      `json:"cols"`
}

// Position is a freeform card coordinate in layout pixels, relative to the
// grid container.
type Position struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// PositionMap maps item identifiers to their freeform positions. Entries are
// created lazily and never deleted by normal operation.
type PositionMap map[string]Position

// Preferences is the persisted subset of Criteria plus ViewState.
type Preferences struct {
	Mode       ViewMode      `json:"mode"`
	Query      string        `json:"q"`
	Categories []string      `json:"categories"`
	Tags       []string      `json:"tags"`
	Logic      Logic         `json:"logic"`
	Sort       SortDirection `json:"dateSort"`
	Columns    int           `json:"cols"`
}

// Defaults returns the hard-coded fallback preferences. The default sort
// direction differs between the two page variants, so it is a parameter.
func Defaults(sort SortDirection) Preferences {
	if sort != SortOldest {
		sort = SortNewest
	}
	return Preferences{
		Mode:    ModeGrid,
		Logic:   LogicOr,
		Sort:    sort,
		Columns: 4,
	}
}

// Normalize clamps and defaults every field in place so downstream code never
// sees an out-of-range value. Facet selections are intersected with the
// derived facet sets, restoring the invariant that selections only contain
// known values.
func (p *Preferences) Normalize(defaults Preferences, facets catalog.Facets) {
	if p.Mode != ModeGrid && p.Mode != ModeFreeform && p.Mode != ModeStacked {
		p.Mode = defaults.Mode
	}
	if p.Logic != LogicOr && p.Logic != LogicAnd {
		p.Logic = defaults.Logic
	}
	if p.Sort != SortNewest && p.Sort != SortOldest {
		p.Sort = defaults.Sort
	}
	if p.Columns < MinColumns || p.Columns > MaxColumns {
		p.Columns = defaults.Columns
	}
	p.Categories = intersect(p.Categories, facets.Categories)
	p.Tags = intersect(p.Tags, facets.Tags)
}

// Validate checks a preferences payload received over the wire.
func (p Preferences) Validate() error {
	if p.Mode != "" && p.Mode != ModeGrid && p.Mode != ModeFreeform && p.Mode != ModeStacked {
		return fmt.Errorf("invalid view mode: %s", p.Mode)
	}
	if p.Logic != "" && p.Logic != LogicOr && p.Logic != LogicAnd {
		return fmt.Errorf("invalid combination logic: %s", p.Logic)
	}
	if p.Sort != "" && p.Sort != SortNewest && p.Sort != SortOldest {
		return fmt.Errorf("invalid sort direction: %s", p.Sort)
	}
	if p.Columns != 0 && (p.Columns < MinColumns || p.Columns > MaxColumns) {
		return fmt.Errorf("invalid column count: %d (must be between %d and %d)", p.Columns, MinColumns, MaxColumns)
	}
	return nil
}

// Criteria projects the preference fields consumed by the filter engine.
func (p Preferences) Criteria() Criteria {
	return Criteria{
		Query:      p.Query,
		Categories: p.Categories,
		Tags:       p.Tags,
		Logic:      p.Logic,
		Sort:       p.Sort,
	}
}

// ViewState projects the layout fields.
func (p Preferences) ViewState() ViewState {
	return ViewState{Mode: p.Mode, Columns: p.Columns}
}

// Toggle flips a facet value in or out of the selection for the given kind.
// Values not present in the derived facet sets are ignored.
func (p *Preferences) Toggle(kind FacetKind, value string, facets catalog.Facets) bool {
	switch kind {
	case FacetCategory:
		if !facets.HasCategory(value) {
			return false
		}
		p.Categories = flip(p.Categories, value)
	case FacetTag:
		if !facets.HasTag(value) {
			return false
		}
		p.Tags = flip(p.Tags, value)
	default:
		return false
	}
	return true
}

// ClearFilters resets the query and both facet selections, leaving view state
// and sort untouched.
func (p *Preferences) ClearFilters() {
	p.Query = ""
	p.Categories = nil
	p.Tags = nil
}

func flip(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}

func intersect(selection, known []string) []string {
	if len(selection) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}
	var out []string
	for _, s := range selection {
		if _, ok := set[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
