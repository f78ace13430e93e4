package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/catalog"
	"github.com/rshade/wattfocus/internal/offer"
)

func smallCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Document{
		Providers: []offer.Provider{{ID: "p", Name: "Provider"}},
		Offers: []offer.Record{{
			ID: "flat", Name: "Flat", ProviderID: "p", OfferType: "FLAT",
			BasePrice: offer.RateOf(offer.Float(0.2)),
		}},
	})
	require.NoError(t, err)
	return c
}

func TestCachedSource_MissThenHit(t *testing.T) {
	inner := &countingSource{catalog: smallCatalog(t)}
	store := newMemStore()
	src := catalog.NewCachedSource(inner, "https://tariffs.example", store)

	first, err := src.Load(context.Background())
	require.NoError(t, err)
	second, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "second load is served from the cache")
	assert.Equal(t, 1, store.sets)
	assert.Equal(t, first.Offers, second.Offers)
}

func TestCachedSource_StoreErrorFallsThrough(t *testing.T) {
	inner := &countingSource{catalog: smallCatalog(t)}
	store := newMemStore()
	store.getErr = errors.New("disk on fire")

	c, err := catalog.NewCachedSource(inner, "u", store).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Offers, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSource_SourceError(t *testing.T) {
	boom := errors.New("backend down")
	inner := &countingSource{err: boom}
	store := newMemStore()

	_, err := catalog.NewCachedSource(inner, "u", store).Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, store.sets)
}

func TestCachedSource_CorruptEntryRefetches(t *testing.T) {
	inner := &countingSource{catalog: smallCatalog(t)}
	store := newMemStore()
	src := catalog.NewCachedSource(inner, "u", store)

	_, err := src.Load(context.Background())
	require.NoError(t, err)
	for k, e := range store.entries {
		e.Data = []byte(`{"schema_version":"9.0.0"}`)
		store.entries[k] = e
	}

	_, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
