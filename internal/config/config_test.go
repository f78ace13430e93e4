package config_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/cache"
	"github.com/rshade/wattfocus/internal/config"
	"github.com/rshade/wattfocus/internal/pricing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, env := range []string{
		config.EnvOutputFormat, config.EnvLocale, config.EnvCatalog,
		config.EnvCatalogURL, config.EnvLogLevel, config.EnvLogFormat,
		cache.EnvEnabled, cache.EnvTTLSeconds, cache.EnvMaxSizeMB, cache.EnvDir,
	} {
		t.Setenv(env, "")
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func TestNew_Defaults(t *testing.T) {
	home := isolate(t)

	cfg := config.New()

	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, pricing.DefaultLocale, cfg.Output.Locale)
	assert.Equal(t, "EUR", cfg.Output.Currency)
	assert.True(t, cfg.Cache.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := config.New()
	cfg.Output.Locale = "en-US"
	cfg.Catalog.Path = "/srv/offers.yaml"
	require.NoError(t, cfg.Save())

	reloaded := config.New()
	assert.Equal(t, "en-US", reloaded.Output.Locale)
	assert.Equal(t, "/srv/offers.yaml", reloaded.Catalog.Path)
}

func TestApplyEnv(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvOutputFormat, "JSON")
	t.Setenv(config.EnvLocale, "en-GB")
	t.Setenv(config.EnvCatalog, "/tmp/c.yaml")
	t.Setenv(config.EnvCatalogURL, "https://x.example")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(cache.EnvEnabled, "false")
	t.Setenv(cache.EnvTTLSeconds, "2h")
	t.Setenv(cache.EnvDir, "/tmp/wf-cache")

	cfg := config.New()

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 7200, cfg.Cache.TTLSeconds)
	assert.Equal(t, "/tmp/wf-cache", cfg.Cache.Directory)

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "en-GB", cfg.Output.Locale)
	assert.Equal(t, "/tmp/c.yaml", cfg.Catalog.Path)
	assert.Equal(t, "https://x.example", cfg.Catalog.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"bad format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }, config.ErrInvalidFormat},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }, config.ErrInvalidLogFormat},
		{"zero timeout", func(c *config.Config) { c.Catalog.TimeoutSeconds = 0 }, config.ErrInvalidTimeout},
		{"share above one", func(c *config.Config) { c.Simulation.OffPeakShare = 1.5 }, config.ErrInvalidShare},
		{"negative kwh", func(c *config.Config) { c.Simulation.MonthlyKwh = -1 }, config.ErrInvalidKwh},
		{"infinite kwh", func(c *config.Config) { c.Simulation.MonthlyKwh = math.Inf(1) }, config.ErrInvalidKwh},
		{"nan kwh", func(c *config.Config) { c.Simulation.MonthlyKwh = math.NaN() }, config.ErrInvalidKwh},
		{"nan share", func(c *config.Config) { c.Simulation.OffPeakShare = math.NaN() }, config.ErrInvalidShare},
		{"infinite share", func(c *config.Config) { c.Simulation.OffPeakShare = math.Inf(-1) }, config.ErrInvalidShare},
		{"bad color", func(c *config.Config) { c.Simulation.DayColor = "green" }, pricing.ErrUnknownDayColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	t.Run("short ttl only matters when cache is on", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Cache.TTLSeconds = 1
		require.Error(t, cfg.Validate())
		cfg.Cache.Enabled = false
		require.NoError(t, cfg.Validate())
	})
}

func TestGetSetList(t *testing.T) {
	cfg := config.Defaults()

	v, err := cfg.Get("output.locale")
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", v)

	require.NoError(t, cfg.Set("cache.enabled", "false"))
	assert.False(t, cfg.Cache.Enabled)
	require.NoError(t, cfg.Set("cache.ttl_seconds", "7200"))
	assert.Equal(t, 7200, cfg.Cache.TTLSeconds)
	require.NoError(t, cfg.Set("simulation.off_peak_share", "0.4"))
	assert.InDelta(t, 0.4, cfg.Simulation.OffPeakShare, 1e-9)
	require.NoError(t, cfg.Set("catalog.path", "/srv/offers.yaml"))
	assert.Equal(t, "/srv/offers.yaml", cfg.Catalog.Path)

	require.Error(t, cfg.Set("cache.enabled", "maybe"))
	_, err = cfg.Get("output.nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	_, err = cfg.Get("output")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	var keys []string
	for _, s := range cfg.List() {
		keys = append(keys, s.Key)
	}
	assert.Contains(t, keys, "output.default_format")
	assert.Contains(t, keys, "catalog.url")
	assert.Contains(t, keys, "simulation.day_color")
	assert.NotContains(t, keys, "configpath")
}

func TestSimulationConfig_Accessors(t *testing.T) {
	s := config.Defaults().Simulation
	s.OffPeakShare = 0.4
	assert.InDelta(t, 0.4, s.Usage().OffPeakShare, 1e-9)
	assert.Equal(t, pricing.ColorBlue, s.Color())
	assert.Equal(t, pricing.DefaultOffPeakWindow(), s.Window())

	s.OffPeakWindow = "bogus"
	s.DayColor = "bogus"
	assert.Equal(t, pricing.DefaultOffPeakWindow(), s.Window())
	assert.Equal(t, pricing.ColorBlue, s.Color())
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)
	first := config.GetGlobalConfig()
	assert.Same(t, first, config.GetGlobalConfig())

	config.ResetGlobalConfigForTest()
	assert.NotSame(t, first, config.GetGlobalConfig())
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	assert.Equal(t, "stderr", lc.ToLoggingConfig().Output)

	lc.File = "/tmp/wattfocus.log"
	got := lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, "/tmp/wattfocus.log", got.File)
}
