package log

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelton/quill/internal/config"
)

func TestSetupLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quill.log")

	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)

	logger.Debug("cache opened", "server", "http://example.test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "cache opened", entry["msg"])
	assert.Equal(t, "http://example.test", entry["server"])
}

func TestSetupLoggerRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.log")

	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "ERROR"})
	require.NoError(t, err)

	logger.Info("dropped")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestExpandHomePassthrough(t *testing.T) {
	got, err := expandHome("/var/log/quill.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/quill.log", got)
}

func TestNullLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		NullLogger().Error("ignored", "key", "value")
	})
}
