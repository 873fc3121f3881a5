// Package source fetches the catalog document and turns it into validated
// items plus derived facets. The catalog is fetched exactly once at startup;
// retry policy, if any, belongs to the caller.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrLoad wraps every catalog fetch/parse failure. Callers surface it as a
// non-fatal placeholder state rather than crashing.
var ErrLoad = errors.New("catalog load failed")

// Source supplies the raw catalog document bytes.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads the catalog from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoad, s.Path, err)
	}
	return data, nil
}

// HTTPSource fetches the catalog over HTTP(S).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrLoad, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: unexpected status %d", ErrLoad, s.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrLoad, err)
	}
	return data, nil
}
