package testutils

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"thesis-gallery/internal/domain/catalog"
)

// SampleItems returns a small catalog with known recency keys, facets, and
// one video entry.
func SampleItems() []catalog.Item {
	return []catalog.Item{
		{ID: "img-001", Src: "/img/1.jpg", Title: "Blue Door", Creator: "Ana", Year: "2019", Categories: []string{"architecture"}, Tags: []string{"color"}},
		{ID: "img-010", Src: "/img/10.jpg", Title: "Red Wall", Creator: "Bo", CreditURL: "https://example.com/bo", Categories: []string{"texture"}, Tags: []string{"detail"}},
		{ID: "img-003", Src: "/img/3.jpg", Title: "Green Roof", Categories: []string{"architecture", "texture"}, Tags: []string{"color", "detail"}},
		{ID: "vid-007", Src: "/vid/7.mp4", Title: "Street Loop", Type: catalog.MediaVideo, Categories: []string{"texture"}},
	}
}

// SampleCatalogJSON returns SampleItems serialized the way the static
// catalog document is shipped.
func SampleCatalogJSON() []byte {
	payload, err := json.Marshal(SampleItems())
	if err != nil {
		panic(fmt.Sprintf("marshal sample catalog: %v", err))
	}
	return payload
}

// TestLogger returns a silenced logger for test collaborators.
func TestLogger() zerolog.Logger {
	return zerolog.Nop()
}
