package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/logging"
)

func TestCommandAudit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	audit := logging.NewAuditLogger(logging.AuditLoggerConfig{Enabled: true, File: path})
	ctx := logging.ContextWithAuditLogger(context.Background(), audit)
	ctx = logging.ContextWithTraceID(ctx, "trace-1")

	a := startAudit(ctx, "reports financial", map[string]string{"period": "4"})
	a.finish(ctx, "12 rows", nil)
	a.finish(ctx, "ignored", errors.New("backend down"))
	require.NoError(t, audit.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var ok, failed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))

	assert.Equal(t, "reports financial", ok["command"])
	assert.Equal(t, "trace-1", ok["trace_id"])
	assert.Equal(t, true, ok["success"])
	assert.Equal(t, "12 rows", ok["message"])
	assert.Equal(t, map[string]any{"period": "4"}, ok["parameters"])

	assert.Equal(t, false, failed["success"])
	assert.Equal(t, "backend down", failed["error"])
	assert.NotContains(t, failed, "message")
}
