package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/logging"
)

func TestNewLogger_JSONIncludesComponentAndTrace(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLogger(logging.Config{Level: "debug", Format: logging.FormatJSON, Output: &buf})
	l = logging.ComponentLogger(l, "options")

	ctx := logging.ContextWithTraceID(context.Background(), "01TRACE")
	l.Info().Ctx(ctx).Str("operation", "fetch").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "options", line["component"])
	assert.Equal(t, "fetch", line["operation"])
	assert.Equal(t, "01TRACE", line["trace_id"])
	assert.Equal(t, "hello", line["message"])
}

func TestNewLogger_LevelFallback(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLogger(logging.Config{Level: "loud", Output: &buf})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ionctl.log")
	res := logging.NewLoggerWithPath(logging.Config{Level: "info", File: path})
	require.True(t, res.UsingFile)
	assert.Equal(t, path, res.FilePath)

	res.Logger.Info().Msg("to file")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	var buf bytes.Buffer
	res := logging.NewLoggerWithPath(logging.Config{File: filepath.Join(blocker, "ionctl.log"), Output: &buf})
	assert.False(t, res.UsingFile)
	assert.True(t, res.FallbackUsed)
	assert.NotEmpty(t, res.FallbackReason)

	res.Logger.Warn().Msg("still logged")
	assert.Contains(t, buf.String(), "still logged")
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, logging.FromContext(context.Background()))

	var buf bytes.Buffer
	l := logging.NewLogger(logging.Config{Output: &buf})
	ctx := l.WithContext(context.Background())
	logging.FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	generated := logging.GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = logging.ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, logging.GetOrGenerateTraceID(ctx))
}

func TestAuditLogger(t *testing.T) {
	t.Run("disabled is no-op", func(t *testing.T) {
		l := logging.NewAuditLogger(logging.AuditLoggerConfig{})
		l.Log(context.Background(), logging.AuditEntry{Command: "x"})
		assert.NoError(t, l.Close())
	})

	t.Run("writes json lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.log")
		l := logging.NewAuditLogger(logging.AuditLoggerConfig{Enabled: true, File: path})

		entry := logging.NewAuditEntry("chargers save", "TRACE").
			WithEntity("charger", "CHG-1").
			WithEndpoint("PUT /chargers/CHG-1").
			WithResult(true, "Charger updated").
			WithDuration(time.Now())
		l.Log(context.Background(), *entry)
		require.NoError(t, l.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 1)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
		assert.Equal(t, "charger", got["entity"])
		assert.Equal(t, "CHG-1", got["entity_id"])
		assert.Equal(t, true, got["success"])
		assert.Equal(t, "PUT /chargers/CHG-1", got["endpoint"])
	})

	t.Run("context round trip", func(t *testing.T) {
		assert.NotNil(t, logging.AuditLoggerFromContext(context.Background()))
		l := logging.NewAuditLogger(logging.AuditLoggerConfig{})
		ctx := logging.ContextWithAuditLogger(context.Background(), l)
		assert.Equal(t, l, logging.AuditLoggerFromContext(ctx))
	})
}
