package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 800, cfg.CanvasWidth)
	assert.Equal(t, 600, cfg.CanvasHeight)
	assert.Equal(t, 24*time.Hour, cfg.SessionTokenTTL)
	assert.Equal(t, 256, cfg.MaxSessions)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TOKEN_TTL", "90m")
	t.Setenv("ALLOWED_ORIGINS", "https://draw.example.com, http://localhost:5173 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 90*time.Minute, cfg.SessionTokenTTL)
	assert.Equal(t, []string{"https://draw.example.com", "http://localhost:5173"}, cfg.Origins())
	assert.Equal(t, []string{"draw.example.com", "localhost:5173"}, cfg.OriginPatterns())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CANVAS_WIDTH", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CANVAS_WIDTH", "wide")
	_, err = Load()
	assert.Error(t, err)
}

func TestUnknownLogLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
