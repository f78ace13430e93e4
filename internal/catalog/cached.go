package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rshade/wattfocus/internal/cache"
	"github.com/rshade/wattfocus/internal/logging"
)

// Store is the subset of cache.FileStore a CachedSource needs.
type Store interface {
	Get(key string) (*cache.Entry, error)
	Set(key string, data json.RawMessage) error
}

// CachedSource serves a catalog from the store while fresh and refetches
// from the wrapped source otherwise.
type CachedSource struct {
	src   Source
	key   string
	store Store
}

// NewCachedSource caches src under a key derived from location.
func NewCachedSource(src Source, location string, store Store) *CachedSource {
	return &CachedSource{src: src, key: cache.Key("catalog", location), store: store}
}

// Load implements Source. Cache read and write failures are logged and
// otherwise ignored; only the wrapped source can fail the load.
func (s *CachedSource) Load(ctx context.Context) (*Catalog, error) {
	log := logging.FromContext(ctx)

	entry, err := s.store.Get(s.key)
	switch {
	case err == nil:
		var doc Document
		if decErr := json.Unmarshal(entry.Data, &doc); decErr == nil {
			if c, newErr := New(doc); newErr == nil {
				log.Debug().Str("component", "catalog").Str("age", cache.FormatDuration(entry.Age())).Msg("catalog cache hit")
				return c, nil
			}
		}
		log.Warn().Str("component", "catalog").Msg("ignoring unreadable catalog cache entry")
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrExpired), errors.Is(err, cache.ErrDisabled):
		log.Debug().Str("component", "catalog").Err(err).Msg("catalog cache miss")
	default:
		log.Warn().Str("component", "catalog").Err(err).Msg("catalog cache read failed")
	}

	c, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(c.Document())
	if err != nil {
		return nil, fmt.Errorf("encoding catalog for cache: %w", err)
	}
	if setErr := s.store.Set(s.key, data); setErr != nil && !errors.Is(setErr, cache.ErrDisabled) {
		log.Warn().Str("component", "catalog").Err(setErr).Msg("catalog cache write failed")
	}
	return c, nil
}
