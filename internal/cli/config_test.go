package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := isolate(t)

	out, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	_, err = run(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetGetList(t *testing.T) {
	home := isolate(t)

	out, err := run(t, "config", "set", "output.default_format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Set output.default_format = json")

	_, err = run(t, "config", "set", "simulation.monthly_kwh", "250")
	require.NoError(t, err)

	config.ResetGlobalConfigForTest()
	out, err = run(t, "config", "get", "output.default_format")
	require.NoError(t, err)
	assert.Equal(t, "json\n", out)

	out, err = run(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "simulation.monthly_kwh = 250")
	assert.Contains(t, out, "cache.enabled = true")

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_format: json")
}

func TestConfigSet_Rejects(t *testing.T) {
	isolate(t)

	_, err := run(t, "config", "set", "output.nope", "x")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = run(t, "config", "set", "output.default_format", "xml")
	require.ErrorIs(t, err, config.ErrInvalidFormat)

	_, err = run(t, "config", "get", "nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfigSet_DoesNotPersistEnv(t *testing.T) {
	home := isolate(t)
	t.Setenv(config.EnvLocale, "en-US")

	_, err := run(t, "config", "set", "simulation.day_color", "RED")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "en-US")
}

func TestConfigValidate(t *testing.T) {
	home := isolate(t)

	out, err := run(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Catalog: not configured")

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("catalog:\n  timeout_seconds: 0\n"), 0o600))
	_, err = run(t, "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidTimeout)
}
