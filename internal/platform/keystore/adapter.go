package keystore

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Adapter wraps a Store with JSON serialization and local-storage error
// semantics: storage failures are logged at warn level and otherwise
// swallowed, so in-memory state stays authoritative for the session.
type Adapter struct {
	store Store
	log   zerolog.Logger
}

// NewAdapter creates a persistence adapter over the given store.
func NewAdapter(store Store, log zerolog.Logger) *Adapter {
	return &Adapter{store: store, log: log}
}

// Load unmarshals the value stored under key into out. It returns false when
// the key is absent or the read/decode fails; out is left untouched in that
// case.
func (a *Adapter) Load(ctx context.Context, key string, out interface{}) bool {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if err != ErrNotFound {
			a.log.Warn().Err(err).Str("key", key).Msg("failed to load from storage")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("failed to decode stored value")
		return false
	}
	return true
}

// Save marshals v and stores it under key. Failures are swallowed after a
// warn log; the caller's in-memory copy remains the source of truth.
func (a *Adapter) Save(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("failed to encode value for storage")
		return
	}
	if err := a.store.Set(ctx, key, data); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("failed to store value")
	}
}
