// Package filter is the pure filter/sort engine: a deterministic mapping from
// (catalog, criteria) to the ordered visible subset. It has no dependency on
// any presentation layer so it can be tested, and reused, without one.
package filter

import (
	"math/rand"
	"sort"
	"strings"

	"thesis-gallery/internal/domain/catalog"
	"thesis-gallery/internal/domain/session"
)

// Apply returns the items matching the criteria, ordered by recency key per
// the criteria's sort direction. The input slice is never mutated.
func Apply(items []catalog.Item, criteria session.Criteria) []catalog.Item {
	visible := make([]catalog.Item, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	for _, item := range items {
		if query != "" && !strings.Contains(item.SearchText(), query) {
			continue
		}
		if !matchesFacets(item, criteria) {
			continue
		}
		visible = append(visible, item)
	}

	sortByRecency(visible, criteria.Sort)
	return visible
}

// matchesFacets applies the combination logic. With no selected facets at all,
// every item passes. An empty facet side is vacuously true under AND; under OR
// only populated sides participate in the combine, so an empty side can never
// satisfy an item on its own.
func matchesFacets(item catalog.Item, criteria session.Criteria) bool {
	if len(criteria.Categories) == 0 && len(criteria.Tags) == 0 {
		return true
	}

	if criteria.Logic == session.LogicAnd {
		return matchSide(criteria.Categories, item.HasCategory, criteria.Logic) &&
			matchSide(criteria.Tags, item.HasTag, criteria.Logic)
	}

	if len(criteria.Categories) > 0 && matchSide(criteria.Categories, item.HasCategory, criteria.Logic) {
		return true
	}
	return len(criteria.Tags) > 0 && matchSide(criteria.Tags, item.HasTag, criteria.Logic)
}

func matchSide(selection []string, has func(string) bool, logic session.Logic) bool {
	if len(selection) == 0 {
		return true
	}
	if logic == session.LogicAnd {
		for _, v := range selection {
			if !has(v) {
				return false
			}
		}
		return true
	}
	for _, v := range selection {
		if has(v) {
			return true
		}
	}
	return false
}

func sortByRecency(items []catalog.Item, direction session.SortDirection) {
	sort.SliceStable(items, func(a, b int) bool {
		ka, kb := items[a].RecencyKey(), items[b].RecencyKey()
		if direction == session.SortOldest {
			return ka < kb
		}
		return ka > kb
	})
}

// Shuffle randomizes the order of items in place with a Fisher-Yates pass.
// The random source is injected so callers can make it deterministic.
func Shuffle(items []catalog.Item, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
