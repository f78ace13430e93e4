package catalog

import (
	"context"
	"time"
)

// Source produces a catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Options selects and tunes a Source.
type Options struct {
	Path    string
	URL     string
	Timeout time.Duration

	// Cache, when set, wraps remote sources. Files are never cached.
	Cache Store
}

// NewSource picks a file source when Path is set, otherwise an HTTP source
// for URL. It returns ErrNoSource when neither is configured.
func NewSource(opts Options) (Source, error) {
	if opts.Path != "" {
		return FileSource{Path: opts.Path}, nil
	}
	if opts.URL == "" {
		return nil, ErrNoSource
	}
	var src Source = NewHTTPSource(opts.URL, opts.Timeout)
	if opts.Cache != nil {
		src = NewCachedSource(src, opts.URL, opts.Cache)
	}
	return src, nil
}
