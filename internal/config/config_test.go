package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "file", cfg.Catalog.Backend)
	assert.Equal(t, 60, cfg.Matching.SearchThreshold)
	assert.Equal(t, 70, cfg.Matching.DeleteTitleThreshold)
	assert.Equal(t, 70, cfg.Matching.DeleteFilenameThreshold)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.True(t, cfg.Activity.Enabled)
	assert.Contains(t, cfg.Watch.Extensions, ".mkv")
}

func TestLoadPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPath_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[catalog]
backend = "badger"
path = "/tmp/cat"

[matching]
search_threshold = 55

[api]
addr = ":9090"
token = "secret"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "badger", cfg.Catalog.Backend)
	assert.Equal(t, "/tmp/cat", cfg.Catalog.Path)
	assert.Equal(t, 55, cfg.Matching.SearchThreshold)
	assert.Equal(t, ":9090", cfg.API.Addr)
	assert.Equal(t, "secret", cfg.API.Token)

	// Untouched sections keep their defaults.
	assert.Equal(t, 70, cfg.Matching.DeleteTitleThreshold)
	assert.True(t, cfg.Activity.Enabled)
}

func TestToTOML_Roundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.Backend = "badger"
	cfg.API.Token = "t0k3n"
	cfg.Watch.Dirs = []string{"/media/incoming"}

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg.ToTOML()), 0644))

	loaded, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "badger", loaded.Catalog.Backend)
	assert.Equal(t, "t0k3n", loaded.API.Token)
	assert.Equal(t, []string{"/media/incoming"}, loaded.Watch.Dirs)
	assert.Equal(t, cfg.Matching, loaded.Matching)
}

func TestCatalogPath_ExplicitWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.Path = "/data/catalog.json"

	path, err := cfg.CatalogPath()
	require.NoError(t, err)
	assert.Equal(t, "/data/catalog.json", path)
}
