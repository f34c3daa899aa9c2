package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfig, EnvCacheDir, EnvMaxAge, EnvDefaultFace, EnvDBPath} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())

	maxAge, err := config.GetCacheMaxAge()
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, maxAge)
	assert.Equal(t, int64(500*1024*1024), config.ImageCacheBytes())
	assert.Equal(t, "a", config.Cards.DefaultFace)
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	config, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[cache]
max_age = "1h"

[cards]
default_face = ""
swu_sets = ["SOR"]
`), 0o644))

	config, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "1h", config.Cache.MaxAge)
	assert.Equal(t, "", config.Cards.DefaultFace)
	assert.Equal(t, []string{"SOR"}, config.Cards.SWUSets)
	assert.Equal(t, DefaultConfig().Cache.Dir, config.Cache.Dir)
	assert.Equal(t, 9, config.Proxy.CardsPerPage)
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache\n"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(EnvCacheDir, "/tmp/cards")
	t.Setenv(EnvMaxAge, "5m")
	t.Setenv(EnvDefaultFace, " B ")
	t.Setenv(EnvDBPath, "/tmp/catalog.db")

	config, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cards", config.Cache.Dir)
	assert.Equal(t, "5m", config.Cache.MaxAge)
	assert.Equal(t, "b", config.Cards.DefaultFace)
	assert.Equal(t, "/tmp/catalog.db", config.Catalog.DBPath)
}

func TestLoadFrom_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TCGDC_MAX_AGE=10m\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv(EnvMaxAge) })

	config, err := LoadFrom(filepath.Join(dir, "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "10m", config.Cache.MaxAge)
}

func TestSaveTo_RoundTrip(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	config := DefaultConfig()
	config.Cards.MarvelOverrides = []string{"custom.yaml"}
	config.App.DebugMode = true
	require.NoError(t, config.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"custom.yaml"}, loaded.Cards.MarvelOverrides)
	assert.Equal(t, config.Cards.SWUSets, loaded.Cards.SWUSets)
	assert.Equal(t, config.Cache, loaded.Cache)
	assert.Equal(t, config.Proxy, loaded.Proxy)
	assert.True(t, loaded.App.DebugMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad max age", func(c *Config) { c.Cache.MaxAge = "soon" }},
		{"empty cache dir", func(c *Config) { c.Cache.Dir = "" }},
		{"bad face", func(c *Config) { c.Cards.DefaultFace = "c" }},
		{"negative image cache", func(c *Config) { c.Proxy.ImageCacheMB = -1 }},
		{"zero per page", func(c *Config) { c.Proxy.CardsPerPage = 0 }},
		{"empty db path", func(c *Config) { c.Catalog.DBPath = "" }},
		{"bad debounce", func(c *Config) { c.Watch.Debounce = "x" }},
		{"bad poll interval", func(c *Config) { c.Watch.PollInterval = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}
