package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/logging"
)

func TestNewLogger_JSONLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLogger(logging.Config{Level: "warn", Format: logging.FormatJSON}, &buf)

	l.Info().Msg("hidden")
	l.Warn().Str("offer_id", "tempo").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "tempo", entry["offer_id"])
}

func TestNewLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLogger(logging.Config{Level: "loud"}, &buf)
	l.Debug().Msg("debug")
	l.Info().Msg("info")
	assert.NotContains(t, buf.String(), `"debug"`)
	assert.Contains(t, buf.String(), `"info"`)
}

func TestNewLoggerWithPath(t *testing.T) {
	t.Run("stderr output", func(t *testing.T) {
		res := logging.NewLoggerWithPath(logging.Config{Output: logging.OutputStderr})
		assert.False(t, res.UsingFile)
		assert.NoError(t, res.Close())
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "wattfocus.log")
		res := logging.NewLoggerWithPath(logging.Config{Output: logging.OutputFile, File: path, Format: "json"})
		require.True(t, res.UsingFile)
		assert.Equal(t, path, res.FilePath)

		res.Logger.Info().Msg("to file")
		require.NoError(t, res.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
	})

	t.Run("unwritable file falls back to stderr", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		res := logging.NewLoggerWithPath(logging.Config{
			Output: logging.OutputFile,
			File:   filepath.Join(blocker, "nested.log"),
		})
		assert.False(t, res.UsingFile)
		assert.True(t, res.FallbackUsed)
		assert.NotEmpty(t, res.FallbackReason)
	})
}

func TestTraceIDs(t *testing.T) {
	id := logging.NewTraceID()
	_, err := ulid.Parse(id)
	require.NoError(t, err, "trace ids are ULIDs")

	ctx := logging.ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, logging.TraceIDFromContext(ctx))
	assert.Equal(t, id, logging.GetOrGenerateTraceID(ctx))
	assert.NotEqual(t, id, logging.GetOrGenerateTraceID(context.Background()))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewLogger(logging.Config{Level: "info", Format: "json"}, &buf)

	ctx := base.WithContext(context.Background())
	ctx = logging.ContextWithTraceID(ctx, "trace-123")

	logging.FromContext(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)

	assert.NotPanics(t, func() {
		logging.FromContext(context.Background()).Info().Msg("dropped")
	})
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.ComponentLogger(logging.NewLogger(logging.Config{}, &buf), "catalog")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"catalog"`)
}
