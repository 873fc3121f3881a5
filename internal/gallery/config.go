// Package gallery is the portfolio gallery engine: it loads the catalog,
// restores session preferences, filters and sorts the visible set, renders
// cards into a dom tree, and runs the drag and modal interaction machines.
// All mutation goes through Controller methods so every change re-filters,
// re-renders, and persists in one place.
package gallery

import (
	"time"

	"thesis-gallery/internal/domain/session"
)

// Config names the differences between the gallery page variants. The two
// shipped presets are ArchiveVariant and ShowcaseVariant; everything else is
// shared behavior.
type Config struct {
	// DefaultSort is the sort direction used when neither the URL nor
	// stored preferences carry one.
	DefaultSort session.SortDirection

	// Modes lists the view modes the page offers, in toggle order.
	Modes []session.ViewMode

	// ShuffleOnLoad randomizes the very first visible order once after
	// load. Later filter applications never reshuffle.
	ShuffleOnLoad bool

	// VideoEnabled renders video items with a video element. When false,
	// video items fall back to an image element over the same source.
	VideoEnabled bool

	// DragThreshold is the pointer travel, in pixels, below which a
	// gesture is a click.
	DragThreshold float64

	// DragHoldDelay, when positive, additionally requires the pointer to
	// be held this long before movement counts as a drag.
	DragHoldDelay time.Duration

	// ModalCloseDelay is the close animation duration; scroll unlock and
	// hash cleanup wait for it.
	ModalCloseDelay time.Duration

	// SearchDebounce delays applying search input.
	SearchDebounce time.Duration

	// RandSeed fixes the shuffle and rotation randomness when non-zero.
	RandSeed int64
}

const (
	defaultDragThreshold   = 5
	defaultModalCloseDelay = 300 * time.Millisecond
	defaultSearchDebounce  = 150 * time.Millisecond
)

// ArchiveVariant is the main archive page: newest first, grid and freeform,
// images only, no opening shuffle.
func ArchiveVariant() Config {
	return Config{
		DefaultSort: session.SortNewest,
		Modes:       []session.ViewMode{session.ModeGrid, session.ModeFreeform},
	}
}

// ShowcaseVariant is the curated showcase page: oldest first, all three
// modes, video support, and a one-time shuffle for a fresh first
// impression.
func ShowcaseVariant() Config {
	return Config{
		DefaultSort:   session.SortOldest,
		Modes:         []session.ViewMode{session.ModeGrid, session.ModeFreeform, session.ModeStacked},
		ShuffleOnLoad: true,
		VideoEnabled:  true,
	}
}

func (c Config) withDefaults() Config {
	if c.DefaultSort == "" {
		c.DefaultSort = session.SortNewest
	}
	if len(c.Modes) == 0 {
		c.Modes = []session.ViewMode{session.ModeGrid}
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = defaultDragThreshold
	}
	if c.ModalCloseDelay <= 0 {
		c.ModalCloseDelay = defaultModalCloseDelay
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = defaultSearchDebounce
	}
	return c
}

func (c Config) modeEnabled(m session.ViewMode) bool {
	for _, mode := range c.Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// nextMode returns the mode following m in the configured cycle.
func (c Config) nextMode(m session.ViewMode) session.ViewMode {
	for i, mode := range c.Modes {
		if mode == m {
			return c.Modes[(i+1)%len(c.Modes)]
		}
	}
	return c.Modes[0]
}
