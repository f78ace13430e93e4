package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rshade/wattfocus/internal/cache"
	"github.com/rshade/wattfocus/internal/cli"
	"github.com/rshade/wattfocus/internal/config"
)

var testCatalogPath = filepath.Join("testdata", "catalog.yaml")

// isolate points the config home at a temp dir, forces plain output and
// clears environment overrides for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvLocale, "")
	t.Setenv(config.EnvCatalog, "")
	t.Setenv(config.EnvCatalogURL, "")
	t.Setenv(cache.EnvEnabled, "")
	t.Setenv(cache.EnvTTLSeconds, "")
	t.Setenv(cache.EnvDir, "")
	t.Setenv("NO_COLOR", "1")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// run executes the root command with args and returns combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
