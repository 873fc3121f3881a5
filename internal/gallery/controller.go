package gallery

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"thesis-gallery/internal/dom"
	"thesis-gallery/internal/domain/catalog"
	"thesis-gallery/internal/domain/session"
	"thesis-gallery/internal/gallery/filter"
	"thesis-gallery/internal/platform/keystore"
)

// CatalogLoader fetches the item catalog and its derived facets once at
// startup.
type CatalogLoader interface {
	Load(ctx context.Context) ([]catalog.Item, catalog.Facets, error)
}

// Deps are the collaborators a Controller runs against.
type Deps struct {
	Loader    CatalogLoader
	Store     *keystore.Adapter
	Window    *dom.Window
	Scheduler dom.Scheduler
	Logger    zerolog.Logger
}

// ErrMissingDependency is returned by New when a required collaborator is
// absent.
var ErrMissingDependency = errors.New("gallery: missing dependency")

// Controller owns the gallery session: catalog, preferences, positions, the
// visible set, and the rendered tree. All state changes flow through its
// mutator methods, each of which re-filters, re-renders, and persists.
type Controller struct {
	cfg   Config
	log   zerolog.Logger
	win   *dom.Window
	doc   *dom.Document
	sched dom.Scheduler
	store *keystore.Adapter
	ctx   context.Context

	loader CatalogLoader
	bind   Bindings

	items  []catalog.Item
	facets catalog.Facets
	ready  bool

	prefs     session.Preferences
	positions session.PositionMap
	visible   []catalog.Item

	rng           *rand.Rand
	firstApplied  bool
	searchSeq     int
	facetInputs   map[session.FacetKind]map[string]*dom.Element
	gestures      map[string]*gesture
	modal         modalState
	modalElements modalElements
}

// New builds a Controller. Start must be called before any mutator.
func New(cfg Config, deps Deps) (*Controller, error) {
	if deps.Window == nil || deps.Loader == nil || deps.Store == nil {
		return nil, ErrMissingDependency
	}
	if deps.Scheduler == nil {
		deps.Scheduler = dom.TimerScheduler{}
	}
	cfg = cfg.withDefaults()

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Controller{
		cfg:         cfg,
		log:         deps.Logger,
		win:         deps.Window,
		doc:         deps.Window.Document(),
		sched:       deps.Scheduler,
		store:       deps.Store,
		loader:      deps.Loader,
		rng:         rand.New(rand.NewSource(seed)),
		positions:   session.PositionMap{},
		facetInputs: map[session.FacetKind]map[string]*dom.Element{},
		gestures:    map[string]*gesture{},
	}, nil
}

// Start loads the catalog, restores preferences, wires controls, and
// renders the initial view. A catalog load failure is terminal for the
// gallery but not for the page: a placeholder is rendered and the engine
// stays inert.
func (c *Controller) Start(ctx context.Context) {
	c.ctx = ctx
	c.bind = Bind(c.doc)

	items, facets, err := c.loader.Load(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("catalog load failed, gallery disabled")
		c.renderLoadError()
		return
	}
	c.items = items
	c.facets = facets
	c.ready = true

	c.restore(ctx)
	c.syncControls()
	c.renderFilterOptions()
	c.wireControls()
	c.apply()

	c.win.OnHashChange(func(fragment string) {
		c.guard("hashchange", func() { c.handleHash(fragment) })
	})
	c.handleHash(c.win.Location().Fragment)
}

// restore merges stored preferences under URL parameters over hard
// defaults, then clamps the result against the known facets.
func (c *Controller) restore(ctx context.Context) {
	defaults := session.Defaults(c.cfg.DefaultSort)

	prefs := defaults
	c.store.Load(ctx, session.PreferencesKey, &prefs)
	c.store.Load(ctx, session.PositionsKey, &c.positions)
	if c.positions == nil {
		c.positions = session.PositionMap{}
	}

	prefs = session.DecodeQuery(c.win.Location().Query, prefs)
	prefs.Normalize(defaults, c.facets)
	if !c.cfg.modeEnabled(prefs.Mode) {
		prefs.Mode = c.cfg.Modes[0]
	}
	c.prefs = prefs
}

// apply recomputes the visible set from the catalog and current criteria,
// applies the one-time opening shuffle if configured, and renders.
func (c *Controller) apply() {
	if !c.ready {
		return
	}
	c.visible = filter.Apply(c.items, c.prefs.Criteria())
	if !c.firstApplied && c.cfg.ShuffleOnLoad {
		filter.Shuffle(c.visible, c.rng)
	}
	c.firstApplied = true
	c.render()
}

// persist writes preferences to storage and mirrors them into the URL.
// Storage failures are swallowed by the adapter; the in-memory state stays
// authoritative.
func (c *Controller) persist() {
	c.store.Save(c.ctx, session.PreferencesKey, c.prefs)
	c.win.ReplaceQuery(session.EncodeQuery(c.prefs))
}

func (c *Controller) persistPositions() {
	c.store.Save(c.ctx, session.PositionsKey, c.positions)
}

// SetQuery replaces the free-text query.
func (c *Controller) SetQuery(q string) {
	if !c.ready {
		return
	}
	c.prefs.Query = strings.ToLower(q)
	c.apply()
	c.persist()
}

// ToggleFacet flips membership of a category or tag value in the selection.
// Unknown values are ignored.
func (c *Controller) ToggleFacet(kind session.FacetKind, value string) {
	if !c.ready {
		return
	}
	if !c.prefs.Toggle(kind, value, c.facets) {
		return
	}
	c.syncFacetInputs()
	c.apply()
	c.persist()
}

// ClearFilters resets the query and both facet selections, leaving view
// state untouched.
func (c *Controller) ClearFilters() {
	if !c.ready {
		return
	}
	c.prefs.ClearFilters()
	if c.bind.Search != nil {
		c.bind.Search.Value = ""
	}
	c.syncFacetInputs()
	c.apply()
	c.persist()
}

// SetViewMode switches the layout mode. Entering freeform restores or
// generates positions during render; leaving it flushes them to storage.
func (c *Controller) SetViewMode(mode session.ViewMode) {
	if !c.ready || !c.cfg.modeEnabled(mode) || mode == c.prefs.Mode {
		return
	}
	leavingFreeform := c.prefs.Mode == session.ModeFreeform
	c.prefs.Mode = mode
	if leavingFreeform {
		c.persistPositions()
	}
	c.syncControls()
	c.render()
	c.persist()
}

// CycleViewMode advances to the next configured mode.
func (c *Controller) CycleViewMode() {
	if !c.ready {
		return
	}
	c.SetViewMode(c.cfg.nextMode(c.prefs.Mode))
}

// SetColumns changes the grid column count within bounds and applies the
// max-width layout side effect.
func (c *Controller) SetColumns(n int) {
	if !c.ready {
		return
	}
	if n < session.MinColumns {
		n = session.MinColumns
	}
	if n > session.MaxColumns {
		n = session.MaxColumns
	}
	c.prefs.Columns = n
	c.applyColumns()
	c.persist()
}

// ToggleLogic flips the facet combination logic between OR and AND.
func (c *Controller) ToggleLogic() {
	if !c.ready {
		return
	}
	if c.prefs.Logic == session.LogicOr {
		c.prefs.Logic = session.LogicAnd
	} else {
		c.prefs.Logic = session.LogicOr
	}
	c.syncControls()
	c.apply()
	c.persist()
}

// ToggleSortDirection flips between newest-first and oldest-first.
func (c *Controller) ToggleSortDirection() {
	if !c.ready {
		return
	}
	if c.prefs.Sort == session.SortNewest {
		c.prefs.Sort = session.SortOldest
	} else {
		c.prefs.Sort = session.SortNewest
	}
	c.syncControls()
	c.apply()
	c.persist()
}

// Shuffle randomizes the visible order; in freeform mode it instead
// scatters every visible item's stored position within the container.
func (c *Controller) Shuffle() {
	if !c.ready {
		return
	}
	if c.prefs.Mode == session.ModeFreeform {
		c.scatterPositions()
		return
	}
	filter.Shuffle(c.visible, c.rng)
	c.render()
}

// Visible returns the current visible set in render order.
func (c *Controller) Visible() []catalog.Item {
	out := make([]catalog.Item, len(c.visible))
	copy(out, c.visible)
	return out
}

// Preferences returns the current session preferences.
func (c *Controller) Preferences() session.Preferences { return c.prefs }

// Position returns the stored freeform position for an item.
func (c *Controller) Position(id string) (session.Position, bool) {
	p, ok := c.positions[id]
	return p, ok
}

// Facets returns the derived facet sets.
func (c *Controller) Facets() catalog.Facets { return c.facets }

// guard runs a handler and converts a panic into a logged, inert failure.
// No event handler may break the page.
func (c *Controller) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Str("handler", name).Msg("handler panicked")
		}
	}()
	fn()
}

// wireControls attaches listeners to whichever controls exist.
func (c *Controller) wireControls() {
	if c.bind.Search != nil {
		search := c.bind.Search
		search.On(dom.EventInput, func(*dom.Event) {
			c.guard("search", func() {
				c.searchSeq++
				seq := c.searchSeq
				q := search.Value
				c.sched.After(c.cfg.SearchDebounce, func() {
					if seq != c.searchSeq {
						return
					}
					c.guard("search-debounced", func() { c.SetQuery(q) })
				})
			})
		})
	}
	if c.bind.FilterButton != nil && c.bind.FilterPanel != nil {
		c.bind.FilterButton.On(dom.EventClick, func(ev *dom.Event) {
			c.guard("filter-toggle", func() {
				ev.StopPropagation()
				c.bind.FilterPanel.ToggleClass("open")
			})
		})
		// A click anywhere else closes the panel.
		c.doc.Body().On(dom.EventClick, func(ev *dom.Event) {
			c.guard("filter-dismiss", func() {
				if !contains(c.bind.FilterPanel, ev.Target) && !contains(c.bind.FilterButton, ev.Target) {
					c.bind.FilterPanel.RemoveClass("open")
				}
			})
		})
	}
	if c.bind.ClearFilters != nil {
		c.bind.ClearFilters.On(dom.EventClick, func(*dom.Event) {
			c.guard("clear-filters", c.ClearFilters)
		})
	}
	if c.bind.ModeToggle != nil {
		c.bind.ModeToggle.On(dom.EventClick, func(*dom.Event) {
			c.guard("mode-toggle", c.CycleViewMode)
		})
	}
	if c.bind.ColumnsSlider != nil {
		slider := c.bind.ColumnsSlider
		slider.On(dom.EventInput, func(*dom.Event) {
			c.guard("columns", func() {
				n, err := strconv.Atoi(slider.Value)
				if err != nil {
					return
				}
				c.SetColumns(n)
			})
		})
	}
	if c.bind.LogicToggle != nil {
		c.bind.LogicToggle.On(dom.EventClick, func(*dom.Event) {
			c.guard("logic-toggle", c.ToggleLogic)
		})
	}
	if c.bind.SortToggle != nil {
		c.bind.SortToggle.On(dom.EventClick, func(*dom.Event) {
			c.guard("sort-toggle", c.ToggleSortDirection)
		})
	}
	c.doc.Body().On(dom.EventKeyDown, func(ev *dom.Event) {
		c.guard("keyboard", func() { c.handleKey(ev) })
	})
	c.wireModal()
}

func (c *Controller) handleKey(ev *dom.Event) {
	if ev.Key != "Escape" {
		return
	}
	if c.modal.phase == modalOpen || c.modal.phase == modalOpening {
		c.CloseModal()
		return
	}
	if c.bind.FilterPanel != nil && c.bind.FilterPanel.HasClass("open") {
		c.bind.FilterPanel.RemoveClass("open")
	}
}

// syncControls pushes current view state into the control elements.
func (c *Controller) syncControls() {
	if c.bind.Search != nil {
		c.bind.Search.Value = c.prefs.Query
	}
	if c.bind.ColumnsSlider != nil {
		c.bind.ColumnsSlider.Value = strconv.Itoa(c.prefs.Columns)
	}
	if c.bind.ColumnsValue != nil {
		c.bind.ColumnsValue.Text = strconv.Itoa(c.prefs.Columns)
	}
	if c.bind.ModeToggle != nil {
		c.bind.ModeToggle.Text = modeLabel(c.prefs.Mode, c.cfg.nextMode(c.prefs.Mode))
	}
	if c.bind.LogicToggle != nil {
		c.bind.LogicToggle.Text = strings.ToUpper(string(c.prefs.Logic))
	}
	if c.bind.SortToggle != nil {
		if c.prefs.Sort == session.SortNewest {
			c.bind.SortToggle.Text = "Newest"
		} else {
			c.bind.SortToggle.Text = "Oldest"
		}
	}
	c.applyColumnStyles()
}

// applyColumns is the column-count render path: style updates only, no
// re-filter needed.
func (c *Controller) applyColumns() {
	if c.bind.ColumnsValue != nil {
		c.bind.ColumnsValue.Text = strconv.Itoa(c.prefs.Columns)
	}
	c.applyColumnStyles()
}

// applyColumnStyles sets the column CSS variable and the extra right margin
// that only the maximum column count gets.
func (c *Controller) applyColumnStyles() {
	c.doc.SetCSSVar("--cols", strconv.Itoa(c.prefs.Columns))
	if c.prefs.Columns == session.MaxColumns {
		c.doc.Body().Style["margin-right"] = "200px"
	} else {
		c.doc.Body().Style["margin-right"] = "0px"
	}
}

// renderFilterOptions rebuilds the category and tag checkbox lists from the
// derived facets.
func (c *Controller) renderFilterOptions() {
	c.renderFacetList(c.bind.CategoryFilters, session.FacetCategory, c.facets.Categories, c.prefs.Categories)
	c.renderFacetList(c.bind.TagFilters, session.FacetTag, c.facets.Tags, c.prefs.Tags)
}

func (c *Controller) renderFacetList(container *dom.Element, kind session.FacetKind, values, selected []string) {
	if container == nil {
		return
	}
	container.RemoveChildren()
	inputs := map[string]*dom.Element{}
	for _, value := range values {
		label := c.doc.CreateElement("label")
		label.AddClass("filter-option")

		input := c.doc.CreateElement("input")
		input.Attrs["type"] = "checkbox"
		input.Value = value
		input.Checked = inList(selected, value)

		caption := c.doc.CreateElement("span")
		caption.Text = value

		label.AppendChild(input)
		label.AppendChild(caption)
		container.AppendChild(label)
		inputs[value] = input

		value := value
		input.On(dom.EventChange, func(*dom.Event) {
			c.guard("facet-change", func() {
				if input.Checked != inList(c.currentSelection(kind), value) {
					c.ToggleFacet(kind, value)
				}
			})
		})
	}
	c.facetInputs[kind] = inputs
}

func (c *Controller) currentSelection(kind session.FacetKind) []string {
	if kind == session.FacetCategory {
		return c.prefs.Categories
	}
	return c.prefs.Tags
}

// syncFacetInputs keeps checkbox state aligned with the selection sets.
func (c *Controller) syncFacetInputs() {
	for value, input := range c.facetInputs[session.FacetCategory] {
		input.Checked = inList(c.prefs.Categories, value)
	}
	for value, input := range c.facetInputs[session.FacetTag] {
		input.Checked = inList(c.prefs.Tags, value)
	}
}

func (c *Controller) handleHash(fragment string) {
	if c.modal.phase == modalClosing {
		// An open arriving mid-close is ignored rather than racing the
		// close timer.
		return
	}
	if fragment == "" {
		if c.modal.phase == modalOpen || c.modal.phase == modalOpening {
			c.CloseModal()
		}
		return
	}
	if _, err := catalog.Find(c.items, fragment); err != nil {
		// Unknown identifiers in the fragment are not an error.
		return
	}
	c.OpenModal(fragment)
}

func (c *Controller) renderLoadError() {
	if c.bind.Grid == nil {
		return
	}
	c.bind.Grid.RemoveChildren()
	placeholder := c.doc.CreateElement("div")
	placeholder.AddClass("load-error")
	placeholder.Text = "Failed to load images"
	c.bind.Grid.AppendChild(placeholder)
}

func contains(root, node *dom.Element) bool {
	for n := node; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}

func inList(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func modeLabel(current, next session.ViewMode) string {
	return modeName(current) + " ↔ " + modeName(next)
}

func modeName(m session.ViewMode) string {
	switch m {
	case session.ModeFreeform:
		return "Mess"
	case session.ModeStacked:
		return "Stack"
	default:
		return "Grid"
	}
}
