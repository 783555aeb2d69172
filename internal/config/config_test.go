package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("BOARD_NEAREST_RADIUS", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 10, cfg.Board.NearestRadius)
	assert.Equal(t, 200, cfg.Photo.MaxWidth)
	assert.Equal(t, 300, cfg.Photo.MaxHeight)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BOARD_NEAREST_RADIUS", "4")
	t.Setenv("BOARD_KEYWORDS_FILE", "/etc/seatboard/keywords.yaml")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 4, cfg.Board.NearestRadius)
	assert.Equal(t, "/etc/seatboard/keywords.yaml", cfg.Board.KeywordsFile)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	t.Setenv("BOARD_NEAREST_RADIUS", "-1")
	_, err = Load()
	assert.Error(t, err)
}
