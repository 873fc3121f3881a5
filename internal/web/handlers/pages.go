package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const lastUpdatedSpan = `<span id="lastUpdated">`

// pagesHandler serves the static site. HTML pages are stamped with the
// catalog's last-updated date before they go out; everything else falls
// through to a plain file server.
func (h *Handler) pagesHandler() http.Handler {
	fileServer := http.FileServer(http.Dir(h.config.StaticDir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if strings.HasSuffix(name, "/") || name == "" {
			name += "index.html"
		}
		if name == "/index.html" || strings.HasSuffix(name, ".html") {
			if h.servePage(w, r, name) {
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}

// servePage reads an HTML page and rewrites the lastUpdated span's content
// to the catalog load date. Returns false when the page cannot be read, so
// the caller can fall back to the file server's own error handling.
func (h *Handler) servePage(w http.ResponseWriter, r *http.Request, name string) bool {
	full := filepath.Join(h.config.StaticDir, filepath.FromSlash(name))
	data, err := os.ReadFile(full)
	if err != nil {
		return false
	}

	page := h.stampLastUpdated(string(data))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
	return true
}

// stampLastUpdated replaces the contents of the first lastUpdated span with
// the catalog date. Pages without the span pass through untouched.
func (h *Handler) stampLastUpdated(page string) string {
	start := strings.Index(page, lastUpdatedSpan)
	if start < 0 {
		return page
	}
	open := start + len(lastUpdatedSpan)
	end := strings.Index(page[open:], "</span>")
	if end < 0 {
		return page
	}
	return page[:open] + h.lastUpdated.Format("2006-01-02") + page[open+end:]
}
