package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/catalog"
	"github.com/rshade/wattfocus/internal/logging"
	"github.com/rshade/wattfocus/internal/offer"
)

const (
	providersJSON = `[{"id":"edf","name":"EDF"},{"id":"engie","name":"Engie"}]`
	offersJSON    = `[
		{"id":"edf-base","name":"Base","provider_id":"edf","offer_type":"BASE","subscription_price":"12.44","base_price":0.2516},
		{"id":"engie-hchp","name":"HC/HP","provider_id":"engie","offer_type":"HC_HP","subscription_price":13.1,"hc_price":"0,2068","hp_price":0.27}
	]`
)

type recordedRequest struct {
	path      string
	requestID string
}

func newBackend(t *testing.T, schema string, status map[string]int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recordedRequest
	)
	mux := http.NewServeMux()
	handle := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			seen = append(seen, recordedRequest{path: r.URL.Path, requestID: r.Header.Get(catalog.RequestIDHeader)})
			mu.Unlock()
			if code, ok := status[path]; ok {
				w.WriteHeader(code)
				return
			}
			if schema != "" {
				w.Header().Set(catalog.SchemaHeader, schema)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	handle("/api/providers", providersJSON)
	handle("/api/offers", offersJSON)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), seen...)
	}
}

func TestHTTPSource_Load(t *testing.T) {
	srv, requests := newBackend(t, "1.1.0", nil)

	src := catalog.NewHTTPSource(srv.URL+"/api/", time.Second)
	c, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.1.0", c.SchemaVersion)
	assert.Len(t, c.Providers, 2)
	hchp, ok := c.Offer("engie-hchp")
	require.True(t, ok)
	assert.Equal(t, offer.SchemePeakOffPeak, hchp.Scheme())

	reqs := requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, reqs[0].requestID, reqs[1].requestID, "both requests share one trace id")
	_, err = ulid.Parse(reqs[0].requestID)
	assert.NoError(t, err)
}

func TestHTTPSource_PropagatesTraceID(t *testing.T) {
	srv, requests := newBackend(t, "", nil)

	ctx := logging.ContextWithTraceID(context.Background(), "01HZY0000000000000000TRACE")
	_, err := catalog.NewHTTPSource(srv.URL+"/api", 0).Load(ctx)
	require.NoError(t, err)

	for _, r := range requests() {
		assert.Equal(t, "01HZY0000000000000000TRACE", r.requestID)
	}
}

func TestHTTPSource_StatusError(t *testing.T) {
	srv, _ := newBackend(t, "", map[string]int{"/api/offers": http.StatusServiceUnavailable})

	_, err := catalog.NewHTTPSource(srv.URL+"/api", time.Second).Load(context.Background())
	require.Error(t, err)

	var statusErr *catalog.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "offers", statusErr.Resource)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestHTTPSource_UnsupportedSchema(t *testing.T) {
	srv, _ := newBackend(t, "3.0.0", nil)

	_, err := catalog.NewHTTPSource(srv.URL+"/api", time.Second).Load(context.Background())
	require.ErrorIs(t, err, catalog.ErrUnsupportedSchema)
}

func TestHTTPSource_Canceled(t *testing.T) {
	srv, _ := newBackend(t, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := catalog.NewHTTPSource(srv.URL+"/api", time.Second).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
