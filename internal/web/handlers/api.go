package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"thesis-gallery/internal/config"
	"thesis-gallery/internal/domain/catalog"
	"thesis-gallery/internal/domain/session"
	"thesis-gallery/internal/gallery/filter"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.GetZerolog().Warn().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// listCatalogHandler returns the catalog filtered and sorted by the same
// query parameters the gallery pages use, so a shared URL's query string
// can be replayed against the API directly.
func (h *Handler) listCatalogHandler(w http.ResponseWriter, r *http.Request) {
	prefs := h.decodePreferences(r.URL.Query())
	visible := filter.Apply(h.items, prefs.Criteria())

	h.writeJSON(w, http.StatusOK, struct {
		Items []catalog.Item `json:"items"`
		Total int            `json:"total"`
	}{Items: visible, Total: len(visible)})
}

func (h *Handler) getItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := catalog.Find(h.items, id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			h.writeError(w, http.StatusNotFound, "item not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

func (h *Handler) facetsHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, struct {
		Categories []string `json:"categories"`
		Tags       []string `json:"tags"`
	}{Categories: h.facets.Categories, Tags: h.facets.Tags})
}

func (h *Handler) metaHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, struct {
		Variant     string `json:"variant"`
		Items       int    `json:"items"`
		LastUpdated string `json:"last_updated"`
	}{
		Variant:     h.config.Variant,
		Items:       len(h.items),
		LastUpdated: h.lastUpdated.Format("2006-01-02"),
	})
}

// getPreferencesHandler returns stored preferences, falling back to the
// variant's defaults when nothing was saved yet.
func (h *Handler) getPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	prefs := session.Defaults(h.defaultSort())
	h.store.Load(r.Context(), session.PreferencesKey, &prefs)
	h.writeJSON(w, http.StatusOK, prefs)
}

func (h *Handler) putPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var prefs session.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed preferences payload")
		return
	}
	if err := prefs.Validate(); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	prefs.Normalize(session.Defaults(h.defaultSort()), h.facets)
	h.store.Save(r.Context(), session.PreferencesKey, prefs)
	h.writeJSON(w, http.StatusOK, prefs)
}

// shareHandler normalizes an arbitrary share link: the query parameters are
// decoded, clamped against the real facet sets, re-encoded canonically, and
// the client is redirected to the gallery page with the clean query.
func (h *Handler) shareHandler(w http.ResponseWriter, r *http.Request) {
	prefs := h.decodePreferences(r.URL.Query())

	target := url.URL{
		Path:     "/static/",
		RawQuery: session.EncodeQuery(prefs).Encode(),
	}
	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (h *Handler) decodePreferences(q url.Values) session.Preferences {
	defaults := session.Defaults(h.defaultSort())
	prefs := session.DecodeQuery(q, defaults)
	prefs.Normalize(defaults, h.facets)
	return prefs
}

func (h *Handler) defaultSort() session.SortDirection {
	if h.config.Variant == config.VariantShowcase {
		return session.SortOldest
	}
	return session.SortNewest
}
