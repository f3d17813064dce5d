package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a directory with no ontovault.toml so only defaults apply.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ontovault.db", cfg.Database.Path)
	assert.Equal(t, "general", cfg.Storage.DefaultDomain)
	assert.Equal(t, "http://ontovault.org/ontology/%s#", cfg.Storage.DefaultNamespace)
	assert.Equal(t, 64, cfg.Composer.MaxHierarchyDepth)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `
[database]
path = "/var/lib/ontovault/store.db"

[storage]
default_domain = "engineering-ethics"

[composer]
max_hierarchy_depth = 16

[log]
json = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/ontovault/store.db", cfg.Database.Path)
	assert.Equal(t, "engineering-ethics", cfg.Storage.DefaultDomain)
	assert.Equal(t, 16, cfg.Composer.MaxHierarchyDepth)
	assert.True(t, cfg.Log.JSON)
	// Unset keys keep their defaults.
	assert.Equal(t, "http://ontovault.org/ontology/%s#", cfg.Storage.DefaultNamespace)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
