package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DefaultFeedURL, cfg.Feed.URL)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Feed.CacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "seeded", cfg.Rating.Mode)
	assert.Equal(t, uint64(42), cfg.Rating.Seed)
}

func TestLoadConfigFrom_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nFEED_URL=http://feed.local/doctors.json\nFEED_TIMEOUT=3s\nREDIS_ENABLED=true\nRATING_MODE=unknown\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "http://feed.local/doctors.json", cfg.Feed.URL)
	assert.Equal(t, 3*time.Second, cfg.Feed.Timeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "unknown", cfg.Rating.Mode)
}

func TestLoadConfigFrom_BadDurationFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.env")
	require.NoError(t, os.WriteFile(path, []byte("FEED_TIMEOUT=soon\n"), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
}
