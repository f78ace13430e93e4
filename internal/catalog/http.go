package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/wattfocus/internal/logging"
	"github.com/rshade/wattfocus/internal/offer"
)

const (
	// RequestIDHeader carries the trace id on catalog requests.
	RequestIDHeader = "X-Request-Id"

	// SchemaHeader optionally declares the schema version of /offers.
	SchemaHeader = "X-Catalog-Schema"

	defaultHTTPTimeout = 10 * time.Second
	maxBodyBytes       = 16 << 20
)

// HTTPSource fetches /providers and /offers from a REST backend.
type HTTPSource struct {
	base   string
	client *http.Client
}

// NewHTTPSource creates a source for baseURL. A zero timeout uses 10s.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPSource{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Load fetches providers and offers concurrently. Either request failing
// cancels the other.
func (s *HTTPSource) Load(ctx context.Context) (*Catalog, error) {
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	log := logging.FromContext(ctx)

	var (
		providers []offer.Provider
		records   []offer.Record
		schema    string
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.get(gCtx, "providers", traceID, &providers)
		return err
	})
	g.Go(func() error {
		h, err := s.get(gCtx, "offers", traceID, &records)
		if err == nil {
			schema = h.Get(SchemaHeader)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c, err := New(Document{SchemaVersion: schema, Providers: providers, Offers: records})
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("component", "catalog").
		Str("url", s.base).
		Int("offers", len(c.Offers)).
		Int("providers", len(c.Providers)).
		Msg("catalog fetched")
	return c, nil
}

// String identifies the source in logs.
func (s *HTTPSource) String() string {
	return s.base
}

func (s *HTTPSource) get(ctx context.Context, resource, traceID string, into any) (http.Header, error) {
	endpoint, err := url.JoinPath(s.base, resource)
	if err != nil {
		return nil, fmt.Errorf("building %s URL: %w", resource, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, traceID)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Resource: resource, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(into); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", resource, err)
	}
	return resp.Header, nil
}

// StatusError is returned when the backend answers with a non-200 status.
type StatusError struct {
	Resource string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d %s", e.Resource, e.Code, http.StatusText(e.Code))
}
