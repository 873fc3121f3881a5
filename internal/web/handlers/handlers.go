// Package handlers exposes the gallery over HTTP: the static site, a JSON
// catalog API that runs the same filter engine the pages use, preference
// storage, and share-link normalization.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"thesis-gallery/internal/config"
	"thesis-gallery/internal/domain/catalog"
	"thesis-gallery/internal/observability"
	"thesis-gallery/internal/platform/keystore"
)

// Handler carries the loaded catalog and the collaborators the routes need.
// The catalog is immutable after startup, so no locking is required.
type Handler struct {
	items  []catalog.Item
	facets catalog.Facets
	store  *keystore.Adapter
	config *config.Config
	logger *observability.Logger

	metrics     *observability.HTTPMetrics
	lastUpdated time.Time
}

// New builds a Handler around a loaded catalog.
func New(items []catalog.Item, facets catalog.Facets, store *keystore.Adapter, cfg *config.Config, logger *observability.Logger) *Handler {
	return &Handler{
		items:       items,
		facets:      facets,
		store:       store,
		config:      cfg,
		logger:      logger,
		lastUpdated: time.Now().UTC(),
	}
}

// WithMetrics attaches HTTP metrics instruments.
func (h *Handler) WithMetrics(metrics *observability.HTTPMetrics) *Handler {
	h.metrics = metrics
	return h
}

// Routes assembles the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(observability.TracingMiddleware(observability.GetTracer()))
	if h.metrics != nil {
		r.Use(observability.MetricsMiddleware(h.metrics))
	}

	r.Get("/healthz", h.healthzHandler)
	r.Get("/readyz", h.readyzHandler)

	// The gallery pages themselves are static files; HTML pages pass
	// through the last-updated stamper on the way out.
	r.Handle("/static/*", http.StripPrefix("/static/", h.pagesHandler()))
	r.Get("/", h.indexHandler)
	r.Get("/share", h.shareHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.listCatalogHandler)
		r.Get("/catalog/{id}", h.getItemHandler)
		r.Get("/facets", h.facetsHandler)
		r.Get("/meta", h.metaHandler)
		r.Get("/preferences", h.getPreferencesHandler)
		r.Put("/preferences", h.putPreferencesHandler)
	})

	return r
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/", http.StatusFound)
}
