package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Refresh.Window)
	assert.True(t, cfg.Refresh.Enabled)
	assert.False(t, cfg.Layout.Shuffle)
	assert.Equal(t, 4, cfg.Cache.SizeMB)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FITPLAN_API_BASE_URL", "http://example.test/api")
	t.Setenv("FITPLAN_REFRESH_WINDOW", "750ms")
	t.Setenv("FITPLAN_LAYOUT_SHUFFLE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api", cfg.API.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Refresh.Window)
	assert.True(t, cfg.Layout.Shuffle)
}

func TestExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://10.0.0.2:5002/api
layout:
  shuffle: true
  seed: 99
plan:
  generate_on_open: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:5002/api", cfg.API.BaseURL)
	assert.True(t, cfg.Layout.Shuffle)
	assert.Equal(t, uint64(99), cfg.Layout.Seed)
	assert.True(t, cfg.Plan.GenerateOnOpen)
	assert.Equal(t, 3*time.Second, cfg.Refresh.Window, "unset keys keep defaults")
}

func TestMissingExplicitFileFails(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
