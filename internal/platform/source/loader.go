package source

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"thesis-gallery/internal/config"
	"thesis-gallery/internal/domain/catalog"
)

const instrumentationName = "thesis-gallery/catalog"

// Loader fetches, decodes, and validates the catalog.
type Loader struct {
	src Source
	log zerolog.Logger
}

// NewLoader creates a loader over the given source.
func NewLoader(src Source, log zerolog.Logger) *Loader {
	return &Loader{src: src, log: log}
}

// NewLoaderFromConfig picks the source implementation named by the
// configuration.
func NewLoaderFromConfig(cfg config.CatalogConfig, log zerolog.Logger) (*Loader, error) {
	switch cfg.Kind {
	case config.SourceFile:
		return NewLoader(FileSource{Path: cfg.Path}, log), nil
	case config.SourceHTTP:
		return NewLoader(HTTPSource{URL: cfg.URL}, log), nil
	case config.SourceMinIO:
		src, err := NewMinIOSource(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return NewLoader(src, log), nil
	default:
		return nil, fmt.Errorf("unknown catalog source kind: %s", cfg.Kind)
	}
}

// Load fetches the catalog once and returns the parsed items along with the
// derived facet sets. Items failing validation are dropped with a warning
// rather than failing the whole load; a document that decodes to nothing
// useful is still an ErrLoad.
func (l *Loader) Load(ctx context.Context) ([]catalog.Item, catalog.Facets, error) {
	tracer := otel.Tracer(instrumentationName)
	ctx, span := tracer.Start(ctx, "catalog.load")
	defer span.End()

	data, err := l.src.Fetch(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, catalog.Facets{}, err
	}

	var raw []catalog.Item
	if err := json.Unmarshal(data, &raw); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, catalog.Facets{}, fmt.Errorf("%w: decode: %v", ErrLoad, err)
	}

	items := make([]catalog.Item, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		if err := item.Validate(); err != nil {
			l.log.Warn().Err(err).Msg("dropping invalid catalog item")
			continue
		}
		if _, dup := seen[item.ID]; dup {
			l.log.Warn().Str("id", item.ID).Msg("dropping duplicate catalog item")
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	if len(raw) > 0 && len(items) == 0 {
		span.SetStatus(codes.Error, "no valid items")
		return nil, catalog.Facets{}, fmt.Errorf("%w: no valid items in catalog", ErrLoad)
	}

	facets := catalog.BuildFacets(items)
	span.SetAttributes(
		attribute.Int("catalog.items", len(items)),
		attribute.Int("catalog.categories", len(facets.Categories)),
		attribute.Int("catalog.tags", len(facets.Tags)),
	)
	l.log.Info().
		Int("items", len(items)).
		Int("categories", len(facets.Categories)).
		Int("tags", len(facets.Tags)).
		Msg("catalog loaded")

	return items, facets, nil
}
