package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/config"
)

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := config.Defaults()
	overlay := writeOverlay(t, `
output:
  default_format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Empty(t, target.Output.Locale, "the whole section is replaced")
	assert.Equal(t, "info", target.Logging.Level, "absent sections are untouched")
	assert.True(t, target.Cache.Enabled)
}

func TestShallowMergeYAML_MultipleSections(t *testing.T) {
	target := config.Defaults()
	overlay := writeOverlay(t, `
catalog:
  url: https://tariffs.example/api
  timeout_seconds: 5
simulation:
  monthly_kwh: 250
  off_peak_share: 0.5
  off_peak_window: "23:00-07:00"
  day_color: white
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "https://tariffs.example/api", target.Catalog.URL)
	assert.Equal(t, 5, target.Catalog.TimeoutSeconds)
	assert.InDelta(t, 250.0, target.Simulation.MonthlyKwh, 1e-9)
	assert.Equal(t, "white", target.Simulation.DayColor)
}

func TestShallowMergeYAML_EmptyAndUnknown(t *testing.T) {
	target := config.Defaults()
	before := *target

	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "# nothing here\n")))
	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "plugins:\n  x: 1\n")))

	assert.Equal(t, before, *target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "whatever"))
	require.Error(t, config.ShallowMergeYAML(config.Defaults(), filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, config.ShallowMergeYAML(config.Defaults(), writeOverlay(t, "output: [unclosed")))
	require.Error(t, config.ShallowMergeYAML(config.Defaults(), writeOverlay(t, "cache:\n  enabled: maybe\n")))
}
