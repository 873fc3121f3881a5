package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thesis-gallery/internal/config"
)

const sampleCatalog = `[
  {"id": "img-001", "src": "media/roots.jpg", "title": "Root Systems", "categories": ["A"], "tags": ["trees"]},
  {"id": "img-010", "src": "media/canopy.jpg", "title": "Canopy Study", "categories": ["B"]},
  {"id": "vid-003", "src": "media/growth.mp4", "type": "video", "tags": ["light"]}
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "images.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	loader := NewLoader(FileSource{Path: writeCatalog(t, sampleCatalog)}, zerolog.Nop())

	items, facets, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "img-001", items[0].ID)
	assert.Equal(t, []string{"A", "B"}, facets.Categories)
	assert.Equal(t, []string{"light", "trees"}, facets.Tags)
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(FileSource{Path: "/nonexistent/images.json"}, zerolog.Nop())

	_, _, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadMalformedDocument(t *testing.T) {
	loader := NewLoader(FileSource{Path: writeCatalog(t, "{not an array")}, zerolog.Nop())

	_, _, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadDropsInvalidAndDuplicateItems(t *testing.T) {
	content := `[
	  {"id": "img-001", "src": "a.jpg"},
	  {"id": "", "src": "b.jpg"},
	  {"id": "img-001", "src": "c.jpg"},
	  {"id": "img-002"}
	]`
	loader := NewLoader(FileSource{Path: writeCatalog(t, content)}, zerolog.Nop())

	items, _, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "img-001", items[0].ID)
	assert.Equal(t, "a.jpg", items[0].Src)
}

func TestLoadAllItemsInvalid(t *testing.T) {
	loader := NewLoader(FileSource{Path: writeCatalog(t, `[{"id": ""}]`)}, zerolog.Nop())

	_, _, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer server.Close()

	loader := NewLoader(HTTPSource{URL: server.URL, Client: server.Client()}, zerolog.Nop())

	items, _, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestLoadFromHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	loader := NewLoader(HTTPSource{URL: server.URL, Client: server.Client()}, zerolog.Nop())

	_, _, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrLoad)
}

func TestNewLoaderFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.CatalogConfig
		expectError bool
	}{
		{
			name: "file source",
			cfg:  config.CatalogConfig{Kind: config.SourceFile, Path: "data/images.json"},
		},
		{
			name: "http source",
			cfg:  config.CatalogConfig{Kind: config.SourceHTTP, URL: "https://example.org/images.json"},
		},
		{
			name:        "unknown source",
			cfg:         config.CatalogConfig{Kind: "carrier-pigeon"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewLoaderFromConfig(tt.cfg, zerolog.Nop())
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, loader)
			}
		})
	}
}
