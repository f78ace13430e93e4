package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/wattfocus/internal/cache"
	"github.com/rshade/wattfocus/internal/catalog"
	"github.com/rshade/wattfocus/internal/config"
	"github.com/rshade/wattfocus/internal/logging"
	"github.com/rshade/wattfocus/internal/pricing"
)

// catalogLocation resolves the catalog path and URL from flags and config.
// A path from either source wins over any URL.
func catalogLocation(cmd *cobra.Command, cfg *config.Config) (string, string) {
	path, _ := cmd.Flags().GetString(flagCatalog)
	url, _ := cmd.Flags().GetString(flagCatalogURL)
	if path == "" && url == "" {
		path, url = cfg.Catalog.Path, cfg.Catalog.URL
	}
	return path, url
}

// newCatalogStore opens the on-disk cache for remote catalogs. It returns nil
// when caching is disabled or the cache cannot be opened.
func newCatalogStore(ctx context.Context, cmd *cobra.Command, cfg *config.Config) catalog.Store {
	if !cfg.Cache.Enabled {
		return nil
	}
	log := logging.FromContext(ctx)

	ttl := cfg.Cache.TTLSeconds
	if flagTTL, _ := cmd.Flags().GetInt(flagCacheTTL); flagTTL > 0 {
		ttl = flagTTL
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		log.Warn().Err(err).Msg("catalog cache disabled")
		return nil
	}
	store, err := cache.NewFileStore(cache.Options{
		Directory:  dir,
		Enabled:    true,
		TTLSeconds: ttl,
		MaxSizeMB:  cfg.Cache.MaxSizeMB,
	})
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("catalog cache disabled")
		return nil
	}
	return store
}

// loadCatalog loads the catalog selected by flags and config.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Catalog, error) {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	path, url := catalogLocation(cmd, cfg)

	opts := catalog.Options{
		Path:    path,
		URL:     url,
		Timeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second,
	}
	if path == "" && url != "" {
		if store := newCatalogStore(ctx, cmd, cfg); store != nil {
			opts.Cache = store
		}
	}

	src, err := catalog.NewSource(opts)
	if errors.Is(err, catalog.ErrNoSource) {
		return nil, fmt.Errorf("%w: pass --catalog or --catalog-url, or set catalog.path", err)
	}
	if err != nil {
		return nil, err
	}

	c, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	for _, skipped := range c.Skipped {
		log.Warn().Err(skipped).Msg("skipped catalog offer")
	}
	log.Debug().Int("offers", len(c.Offers)).Int("providers", len(c.Providers)).Msg("catalog loaded")
	return c, nil
}

// newFormatter builds the price formatter from --locale and config.
func newFormatter(cmd *cobra.Command, cfg *config.Config) *pricing.Formatter {
	locale, _ := cmd.Flags().GetString(flagLocale)
	if locale == "" {
		locale = cfg.Output.Locale
	}
	return pricing.NewFormatter(locale, cfg.Output.Currency)
}
