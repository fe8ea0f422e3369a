package logs

import (
	"log/slog"
	"path/filepath"
	"testing"

	"solar/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func TestNew_WithRotatingFile(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "info"
	cfg.Env.Log.File = filepath.Join(t.TempDir(), "solar.log")

	logger, err := New(Params{Config: cfg})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	rotator := newRotator(cfg.Env.Log)
	assert.Equal(t, defaultMaxSizeMB, rotator.MaxSize)
	assert.Equal(t, defaultMaxBackups, rotator.MaxBackups)
}
