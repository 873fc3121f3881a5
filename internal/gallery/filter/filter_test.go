package filter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thesis-gallery/internal/domain/catalog"
	"thesis-gallery/internal/domain/session"
)

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: "img-001", Src: "a", Title: "Root Systems", Creator: "Gan", Categories: []string{"A"}, Tags: []string{"trees"}},
		{ID: "img-010", Src: "b", Title: "Canopy Study", Creator: "Lee", Categories: []string{"B"}, Tags: []string{"trees", "light"}},
		{ID: "img-003", Src: "c", Title: "Bark Texture", Creator: "Gan", Categories: []string{"A", "B"}, Tags: []string{"surface"}},
		{ID: "vid-007", Src: "d", Title: "Growth Timelapse", Creator: "Okafor", Categories: []string{"C"}, Tags: []string{"light"}, Type: catalog.MediaVideo},
	}
}

func ids(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func criteria() session.Criteria {
	return session.Criteria{Logic: session.LogicOr, Sort: session.SortNewest}
}

func TestApplyEmptyCriteriaReturnsAllSorted(t *testing.T) {
	c := criteria()
	visible := Apply(testItems(), c)
	assert.Equal(t, []string{"img-010", "vid-007", "img-003", "img-001"}, ids(visible))

	c.Sort = session.SortOldest
	visible = Apply(testItems(), c)
	assert.Equal(t, []string{"img-001", "img-003", "vid-007", "img-010"}, ids(visible))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := testItems()
	c := criteria()
	c.Sort = session.SortOldest
	Apply(items, c)
	assert.Equal(t, "img-001", items[0].ID)
	assert.Equal(t, "img-010", items[1].ID)
}

func TestApplyTextSearch(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "title substring", query: "canopy", expected: []string{"img-010"}},
		{name: "case insensitive", query: "ROOT", expected: []string{"img-001"}},
		{name: "creator match", query: "gan", expected: []string{"img-003", "img-001"}},
		{name: "tag match", query: "light", expected: []string{"img-010", "vid-007"}},
		{name: "no match", query: "submarine", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := criteria()
			c.Query = tt.query
			assert.Equal(t, tt.expected, ids(Apply(testItems(), c)))
		})
	}
}

func TestApplyFacetLogic(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		tags       []string
		logic      session.Logic
		expected   []string
	}{
		{
			name:       "or single category",
			categories: []string{"A"},
			logic:      session.LogicOr,
			expected:   []string{"img-003", "img-001"},
		},
		{
			name:     "or single tag does not match everything",
			tags:     []string{"surface"},
			logic:    session.LogicOr,
			expected: []string{"img-003"},
		},
		{
			name:       "or category or tag",
			categories: []string{"C"},
			tags:       []string{"trees"},
			logic:      session.LogicOr,
			expected:   []string{"img-010", "vid-007", "img-001"},
		},
		{
			name:       "and requires category superset",
			categories: []string{"A", "B"},
			logic:      session.LogicAnd,
			expected:   []string{"img-003"},
		},
		{
			name:       "and across categories and tags",
			categories: []string{"B"},
			tags:       []string{"light"},
			logic:      session.LogicAnd,
			expected:   []string{"img-010"},
		},
		{
			name:     "and with empty category side is vacuous",
			tags:     []string{"trees", "light"},
			logic:    session.LogicAnd,
			expected: []string{"img-010"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := criteria()
			c.Categories = tt.categories
			c.Tags = tt.tags
			c.Logic = tt.logic
			assert.Equal(t, tt.expected, ids(Apply(testItems(), c)))
		})
	}
}

// Scenario from the catalog ordering contract: selecting a category narrows
// to one item; clearing it and sorting oldest restores ascending suffix order.
func TestApplyScenario(t *testing.T) {
	items := []catalog.Item{
		{ID: "img-001", Src: "a", Categories: []string{"A"}},
		{ID: "img-010", Src: "b", Categories: []string{"B"}},
	}

	c := session.Criteria{Categories: []string{"A"}, Logic: session.LogicOr, Sort: session.SortNewest}
	assert.Equal(t, []string{"img-001"}, ids(Apply(items, c)))

	c.Categories = nil
	c.Sort = session.SortOldest
	assert.Equal(t, []string{"img-001", "img-010"}, ids(Apply(items, c)))
}

func TestMalformedIDsSortOldest(t *testing.T) {
	items := []catalog.Item{
		{ID: "img-002", Src: "a"},
		{ID: "weird", Src: "b"},
		{ID: "img-001", Src: "c"},
	}

	c := criteria()
	visible := Apply(items, c)
	require.Len(t, visible, 3)
	// Missing suffix sorts as key 0, i.e. last under newest-first.
	assert.Equal(t, "weird", visible[2].ID)
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	a := testItems()
	b := testItems()

	Shuffle(a, rand.New(rand.NewSource(7)))
	Shuffle(b, rand.New(rand.NewSource(7)))
	assert.Equal(t, ids(a), ids(b))

	// Same multiset of items either way.
	assert.ElementsMatch(t, ids(testItems()), ids(a))
}
