// Package keystore provides the key-value persistence layer behind the
// gallery's preference and position storage: a small Store interface with
// memory, file, and Redis implementations, plus a failure-swallowing JSON
// adapter matching the semantics of browser local storage.
package keystore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key-value store. Values are opaque byte slices; callers
// layer serialization on top (see Adapter).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
