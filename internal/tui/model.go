// Package tui is a terminal browser over the gallery catalog: the same
// filter, facet, and sort state the web pages use, driven by keys instead
// of a pointer.
package tui

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"thesis-gallery/internal/domain/catalog"
	"thesis-gallery/internal/domain/session"
	"thesis-gallery/internal/gallery/filter"
)

type pane int

const (
	paneList pane = iota
	paneSearch
	paneFacets
	paneDetail
)

// Model is the Bubble Tea model for the catalog browser.
type Model struct {
	items  []catalog.Item
	facets catalog.Facets
	prefs  session.Preferences

	visible  []catalog.Item
	selected int

	pane        pane
	searchInput textinput.Model

	facetKind   session.FacetKind
	facetCursor int

	rng *rand.Rand

	width  int
	height int
}

// New builds a Model over a loaded catalog.
func New(items []catalog.Item, facets catalog.Facets, defaultSort session.SortDirection) Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search title, creator, categories, tags..."

	m := Model{
		items:       items,
		facets:      facets,
		prefs:       session.Defaults(defaultSort),
		searchInput: searchInput,
		facetKind:   session.FacetCategory,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.applyFilters()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Visible returns the current visible set, newest or oldest first per the
// sort direction.
func (m Model) Visible() []catalog.Item {
	return m.visible
}

// Preferences returns the session state driving the view.
func (m Model) Preferences() session.Preferences {
	return m.prefs
}

func (m *Model) applyFilters() {
	m.visible = filter.Apply(m.items, m.prefs.Criteria())
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.pane {
	case paneSearch:
		return m.handleSearchKey(msg)
	case paneFacets:
		return m.handleFacetKey(msg)
	case paneDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.pane = paneSearch
		m.searchInput.SetValue(m.prefs.Query)
		m.searchInput.Focus()

	case "f":
		m.pane = paneFacets
		m.facetCursor = 0

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}

	case "enter":
		if len(m.visible) > 0 {
			m.pane = paneDetail
		}

	case "l":
		if m.prefs.Logic == session.LogicOr {
			m.prefs.Logic = session.LogicAnd
		} else {
			m.prefs.Logic = session.LogicOr
		}
		m.applyFilters()

	case "s":
		if m.prefs.Sort == session.SortNewest {
			m.prefs.Sort = session.SortOldest
		} else {
			m.prefs.Sort = session.SortNewest
		}
		m.applyFilters()

	case "r":
		filter.Shuffle(m.visible, m.rng)
		m.selected = 0

	case "x":
		m.prefs.ClearFilters()
		m.searchInput.SetValue("")
		m.applyFilters()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pane = paneList
		m.searchInput.Blur()
		return m, nil

	case "enter":
		m.pane = paneList
		m.searchInput.Blur()
		m.prefs.Query = strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFacetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	values := m.facetValues()

	switch msg.String() {
	case "esc", "f":
		m.pane = paneList

	case "tab":
		if m.facetKind == session.FacetCategory {
			m.facetKind = session.FacetTag
		} else {
			m.facetKind = session.FacetCategory
		}
		m.facetCursor = 0

	case "up", "k":
		if m.facetCursor > 0 {
			m.facetCursor--
		}

	case "down", "j":
		if m.facetCursor < len(values)-1 {
			m.facetCursor++
		}

	case " ", "enter":
		if m.facetCursor < len(values) {
			m.prefs.Toggle(m.facetKind, values[m.facetCursor], m.facets)
			m.applyFilters()
		}
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.pane = paneList
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	}
	return m, nil
}

func (m Model) facetValues() []string {
	if m.facetKind == session.FacetCategory {
		return m.facets.Categories
	}
	return m.facets.Tags
}

func (m Model) selectedItem() (catalog.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return catalog.Item{}, false
	}
	return m.visible[m.selected], true
}
