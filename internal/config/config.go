// Package config loads and saves the wattfocus configuration file and
// applies environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/wattfocus/internal/cache"
	"github.com/rshade/wattfocus/internal/pricing"
)

// Output formats accepted by --output and output.default_format.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const (
	configFileName = "config.yaml"
	outputTypeFile = "file"

	defaultCatalogTimeoutSeconds = 10
	defaultMonthlyKwh            = 400
	maxCatalogTimeoutSeconds     = 300
)

// Environment overrides.
const (
	EnvHome         = "WATTFOCUS_HOME"
	EnvOutputFormat = "WATTFOCUS_OUTPUT_FORMAT"
	EnvLocale       = "WATTFOCUS_LOCALE"
	EnvCatalog      = "WATTFOCUS_CATALOG"
	EnvCatalogURL   = "WATTFOCUS_CATALOG_URL"
	EnvLogLevel     = "WATTFOCUS_LOG_LEVEL"
	EnvLogFormat    = "WATTFOCUS_LOG_FORMAT"
)

// Validation errors.
var (
	ErrInvalidFormat    = errors.New("output format must be table, json or ndjson")
	ErrInvalidShare     = errors.New("share must be between 0 and 1")
	ErrInvalidKwh       = errors.New("monthly kWh must be a finite non-negative number")
	ErrInvalidTimeout   = fmt.Errorf("catalog timeout must be between 1 and %d seconds", maxCatalogTimeoutSeconds)
	ErrInvalidLogFormat = errors.New("log format must be json, console or text")
)

// Config is the full configuration file.
type Config struct {
	Output     OutputConfig     `yaml:"output"     json:"output"`
	Logging    LoggingConfig    `yaml:"logging"    json:"logging"`
	Catalog    CatalogConfig    `yaml:"catalog"    json:"catalog"`
	Cache      CacheConfig      `yaml:"cache"      json:"cache"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`

	configPath string
}

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Locale        string `yaml:"locale"         json:"locale"`
	Currency      string `yaml:"currency"       json:"currency"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// CatalogConfig says where offers come from. Path wins over URL.
type CatalogConfig struct {
	Path           string `yaml:"path,omitempty" json:"path,omitempty"`
	URL            string `yaml:"url,omitempty"  json:"url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	Watch          bool   `yaml:"watch"           json:"watch"`
}

// CacheConfig controls the on-disk catalog cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"             json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"         json:"ttl_seconds"`
	MaxSizeMB  int    `yaml:"max_size_mb"         json:"max_size_mb"`
	Directory  string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// SimulationConfig is the default consumption profile for bill estimates.
type SimulationConfig struct {
	MonthlyKwh    float64 `yaml:"monthly_kwh"     json:"monthly_kwh"`
	OffPeakShare  float64 `yaml:"off_peak_share"  json:"off_peak_share"`
	OffPeakWindow string  `yaml:"off_peak_window" json:"off_peak_window"`
	DayColor      string  `yaml:"day_color"       json:"day_color"`
}

// Defaults returns a configuration populated with built-in defaults and no
// file or environment applied.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Locale:        pricing.DefaultLocale,
			Currency:      pricing.DefaultCurrency,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Catalog: CatalogConfig{
			TimeoutSeconds: defaultCatalogTimeoutSeconds,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
			MaxSizeMB:  cache.DefaultMaxSizeMB,
		},
		Simulation: SimulationConfig{
			MonthlyKwh:    defaultMonthlyKwh,
			OffPeakShare:  pricing.DefaultOffPeakShare,
			OffPeakWindow: "22:00-06:00",
			DayColor:      string(pricing.ColorBlue),
		},
	}
}

// New returns the defaults overlaid with the config file under the config
// directory (if it exists) and the environment. Load errors are ignored so a
// broken file never prevents the CLI from starting; use Load to see them.
func New() *Config {
	cfg := Defaults()
	dir, err := GetConfigDir()
	if err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		_ = cfg.Load()
	}
	cfg.ApplyEnv()
	return cfg
}

// ConfigPath returns the file Load and Save use.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Load and Save use.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load overlays the config file onto c section by section. A missing file is
// not an error.
func (c *Config) Load() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if _, err := os.Stat(c.configPath); os.IsNotExist(err) {
		return nil
	}
	return ShallowMergeYAML(c, c.configPath)
}

// Save writes c to its config path, creating the directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv applies WATTFOCUS_* overrides, including the WATTFOCUS_CACHE_* ones.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLocale); v != "" {
		c.Output.Locale = v
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv(EnvCatalogURL); v != "" {
		c.Catalog.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}

	c.Cache.Enabled = cache.EnabledFromEnv(c.Cache.Enabled)
	c.Cache.TTLSeconds = cache.TTLFromEnv(c.Cache.TTLSeconds)
	c.Cache.MaxSizeMB = cache.MaxSizeFromEnv(c.Cache.MaxSizeMB)
	c.Cache.Directory = cache.DirFromEnv(c.Cache.Directory)
}

// Validate checks values that would otherwise fail later at use.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("output.default_format %q: %w", c.Output.DefaultFormat, ErrInvalidFormat)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console", "text":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidLogFormat)
	}

	if c.Catalog.TimeoutSeconds < 1 || c.Catalog.TimeoutSeconds > maxCatalogTimeoutSeconds {
		return fmt.Errorf("catalog.timeout_seconds %d: %w", c.Catalog.TimeoutSeconds, ErrInvalidTimeout)
	}

	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			return fmt.Errorf("cache.ttl_seconds: %w", err)
		}
	}

	return c.Simulation.validate()
}

// ValidKwh reports whether v is usable as a monthly consumption.
func ValidKwh(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (s SimulationConfig) validate() error {
	if !ValidKwh(s.MonthlyKwh) {
		return fmt.Errorf("simulation.monthly_kwh: %w", ErrInvalidKwh)
	}
	if math.IsNaN(s.OffPeakShare) || s.OffPeakShare < 0 || s.OffPeakShare > 1 {
		return fmt.Errorf("simulation.off_peak_share: %w", ErrInvalidShare)
	}
	if _, err := pricing.ParseOffPeakWindow(s.OffPeakWindow); err != nil {
		return fmt.Errorf("simulation.off_peak_window: %w", err)
	}
	if _, err := pricing.ParseDayColor(s.DayColor); err != nil {
		return fmt.Errorf("simulation.day_color: %w", err)
	}
	return nil
}

// Usage converts the configured profile into a pricing.Usage.
func (s SimulationConfig) Usage() pricing.Usage {
	u := pricing.DefaultUsage(s.MonthlyKwh)
	u.OffPeakShare = s.OffPeakShare
	return u
}

// Window returns the configured off-peak window, or the default when unset
// or malformed.
func (s SimulationConfig) Window() pricing.OffPeakWindow {
	w, err := pricing.ParseOffPeakWindow(s.OffPeakWindow)
	if err != nil {
		return pricing.DefaultOffPeakWindow()
	}
	return w
}

// Color returns the configured day color, or blue when unset or malformed.
func (s SimulationConfig) Color() pricing.DayColor {
	c, err := pricing.ParseDayColor(s.DayColor)
	if err != nil {
		return pricing.ColorBlue
	}
	return c
}
