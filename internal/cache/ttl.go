package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultTTLSeconds is one hour.
	DefaultTTLSeconds = 3600

	// MinTTLSeconds is one minute.
	MinTTLSeconds = 60

	// MaxTTLSeconds is seven days.
	MaxTTLSeconds = 604800

	// DefaultMaxSizeMB caps the cache directory size.
	DefaultMaxSizeMB = 50

	EnvTTLSeconds = "WATTFOCUS_CACHE_TTL_SECONDS"
	EnvEnabled    = "WATTFOCUS_CACHE_ENABLED"
	EnvDir        = "WATTFOCUS_CACHE_DIR"
	EnvMaxSizeMB  = "WATTFOCUS_CACHE_MAX_SIZE_MB"
)

// ErrInvalidTTL is returned for a TTL outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ValidateTTL checks the TTL bounds.
func ValidateTTL(seconds int) error {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

// ParseTTL accepts integer seconds ("3600") or a Go duration ("1h30m").
func ParseTTL(s string) (int, error) {
	if seconds, err := strconv.Atoi(s); err == nil {
		if vErr := ValidateTTL(seconds); vErr != nil {
			return 0, vErr
		}
		return seconds, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL format: %w", err)
	}
	seconds := int(d.Seconds())
	if vErr := ValidateTTL(seconds); vErr != nil {
		return 0, vErr
	}
	return seconds, nil
}

// TTLFromEnv returns WATTFOCUS_CACHE_TTL_SECONDS when valid, else fallback.
func TTLFromEnv(fallback int) int {
	v := os.Getenv(EnvTTLSeconds)
	if v == "" {
		return fallback
	}
	ttl, err := ParseTTL(v)
	if err != nil {
		return fallback
	}
	return ttl
}

// EnabledFromEnv returns WATTFOCUS_CACHE_ENABLED when parseable, else fallback.
func EnabledFromEnv(fallback bool) bool {
	enabled, err := strconv.ParseBool(os.Getenv(EnvEnabled))
	if err != nil {
		return fallback
	}
	return enabled
}

// DirFromEnv returns WATTFOCUS_CACHE_DIR or fallback.
func DirFromEnv(fallback string) string {
	if v := os.Getenv(EnvDir); v != "" {
		return v
	}
	return fallback
}

// MaxSizeFromEnv returns WATTFOCUS_CACHE_MAX_SIZE_MB when a non-negative int, else fallback.
func MaxSizeFromEnv(fallback int) int {
	n, err := strconv.Atoi(os.Getenv(EnvMaxSizeMB))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// FormatDuration renders d compactly: "45s", "30m", "1h30m", "2d3h".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < 24*time.Hour:
		h, m := int(d.Hours()), int(d.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
	days, h := int(d.Hours())/24, int(d.Hours())%24
	if h == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, h)
}
