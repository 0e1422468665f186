package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BIBLIONET_CONFIG", "")
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "biblionet.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
database:
  path: "file.db"
log:
  level: "debug"
`), 0o600))

	t.Setenv("BIBLIONET_CONFIG", path)
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("DB_PATH", "env.db") // env wins over the file
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "env.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("BIBLIONET_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		HTTP:     HTTPConfig{Address: ":8080"},
		Database: DatabaseConfig{Path: "x.db"},
		Log:      LogConfig{Level: "info"},
	}
	assert.Equal(t, "Config{HTTP: :8080, DB: x.db, Log: info}", cfg.String())
}
