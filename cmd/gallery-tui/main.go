package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"thesis-gallery/internal/config"
	"thesis-gallery/internal/domain/session"
	"thesis-gallery/internal/platform/source"
	"thesis-gallery/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// The terminal owns stdout; keep log output away from the screen.
	log := zerolog.Nop()

	loader, err := source.NewLoaderFromConfig(cfg.Catalog, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog source: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	items, facets, err := loader.Load(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog load: %v\n", err)
		os.Exit(1)
	}

	defaultSort := session.SortNewest
	if cfg.Variant == config.VariantShowcase {
		defaultSort = session.SortOldest
	}

	p := tea.NewProgram(tui.New(items, facets, defaultSort), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
