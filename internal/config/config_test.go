package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "provgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "provgraph.db", cfg.Store.Path)
	assert.Equal(t, "trig", cfg.Export.Format)
	assert.Contains(t, cfg.Export.Prefixes, "prov")
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
store:
  driver: memory
log:
  level: debug
  format: json
export:
  format: nquads
  prefixes:
    ex: http://example.org/
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "nquads", cfg.Export.Format)
	assert.Equal(t, "http://example.org/", cfg.Export.Prefixes["ex"])
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeFile(t, "store:\n  driver: memory\n")
	t.Setenv("PROVGRAPH_STORE_DRIVER", "sqlite")
	t.Setenv("PROVGRAPH_STORE_PATH", "/tmp/override.db")
	t.Setenv("PROVGRAPH_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/override.db", cfg.Store.Path)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "store: [not, a, map]"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Driver = "postgres"
	cfg.Log.Level = "loud"
	cfg.Export.Format = "csv"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "export.format")

	cfg = Default()
	cfg.Store.Path = ""
	assert.ErrorContains(t, cfg.Validate(), "store.path")
}
