package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"thesis-gallery/internal/domain/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	pillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	activePillStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("99"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Thesis Gallery"))
	b.WriteString("\n\n")

	switch m.pane {
	case paneSearch:
		b.WriteString("Search: " + m.searchInput.View() + "\n\n")
		b.WriteString(m.renderList())
	case paneFacets:
		b.WriteString(m.renderFacets())
	case paneDetail:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return dimStyle.Render("No images match the current filters.")
	}

	maxRows := m.height - 8
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if m.selected >= maxRows {
		start = m.selected - maxRows + 1
	}
	end := start + maxRows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		it := m.visible[i]
		line := fmt.Sprintf("%-40s %-20s %s", truncate(it.DisplayTitle(), 40), truncate(it.DisplayCreator(), 20), it.DisplayYear())
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFacets() string {
	var b strings.Builder

	catLabel := "Categories"
	tagLabel := "Tags"
	if m.facetKind == session.FacetCategory {
		catLabel = selectedStyle.Render(catLabel)
	} else {
		tagLabel = selectedStyle.Render(tagLabel)
	}
	b.WriteString(catLabel + "  " + tagLabel + "\n\n")

	values := m.facetValues()
	if len(values) == 0 {
		b.WriteString(dimStyle.Render("No values."))
		return b.String()
	}

	selection := m.prefs.Categories
	if m.facetKind == session.FacetTag {
		selection = m.prefs.Tags
	}

	for i, v := range values {
		mark := "[ ]"
		for _, s := range selection {
			if s == v {
				mark = "[x]"
				break
			}
		}
		line := mark + " " + v
		if i == m.facetCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	it, ok := m.selectedItem()
	if !ok {
		return dimStyle.Render("Nothing selected.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(it.DisplayTitle()) + "\n")
	b.WriteString(it.DisplayCreator() + " · " + it.DisplayYear() + "\n\n")
	if len(it.Categories) > 0 {
		b.WriteString(pillStyle.Render(strings.Join(it.Categories, " · ")) + "\n")
	}
	if len(it.Tags) > 0 {
		b.WriteString(dimStyle.Render(strings.Join(it.Tags, ", ")) + "\n")
	}
	if it.Notes != "" {
		b.WriteString("\n" + it.Notes + "\n")
	}
	if it.CreditURL != "" {
		b.WriteString("\n" + dimStyle.Render(it.CreditURL) + "\n")
	}
	return detailBoxStyle.Render(b.String())
}

func (m Model) renderStatus() string {
	parts := []string{
		fmt.Sprintf("%d/%d shown", len(m.visible), len(m.items)),
		"logic " + strings.ToUpper(string(m.prefs.Logic)),
		"sort " + string(m.prefs.Sort),
	}
	if m.prefs.Query != "" {
		parts = append(parts, fmt.Sprintf("q=%q", m.prefs.Query))
	}
	active := len(m.prefs.Categories) + len(m.prefs.Tags)
	if active > 0 {
		parts = append(parts, activePillStyle.Render(fmt.Sprintf(" %d filters ", active)))
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

func (m Model) helpLine() string {
	switch m.pane {
	case paneSearch:
		return "enter apply · esc cancel"
	case paneFacets:
		return "space toggle · tab switch kind · j/k move · esc back"
	case paneDetail:
		return "j/k prev/next · esc back"
	default:
		return "/ search · f facets · l logic · s sort · r shuffle · x clear · enter detail · q quit"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
