package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Config{Level: "debug", Encoding: "json", Output: path})
	require.NoError(t, err)

	ctx := ContextWithSessionID(context.Background(), "s-1")
	WithSessionID(ctx, log).Debug("menu started", zap.String("app", "bank"))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	require.Equal(t, "menu started", entry["msg"])
	require.Equal(t, "s-1", entry["session_id"])
	require.Equal(t, "bank", entry["app"])
	require.Contains(t, entry, "timestamp")
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Config{Level: "warn", Encoding: "console", Output: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hidden")
	require.Contains(t, string(raw), "shown")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud"})
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zap.InfoLevel))
	require.False(t, log.Core().Enabled(zap.DebugLevel))
}

func TestWithSessionIDWithoutValue(t *testing.T) {
	base := zap.NewNop()
	require.Same(t, base, WithSessionID(context.Background(), base))
	require.Nil(t, WithSessionID(context.Background(), nil))
}
