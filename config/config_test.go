package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server_port: "9090"
max_pages: 3
remove_commas: false
session_ttl: 5m
cors_origins:
  - http://localhost:5173
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 3, cfg.MaxPages)
	assert.False(t, cfg.RemoveCommas)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfig(t, "max_pages: 4\n"))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxPages)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server_port: \"9090\"\nmax_pages: 3\n")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_PAGES", "1")
	t.Setenv("REMOVE_COMMAS", "false")
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("CORS_ORIGIN", "http://a.test, http://b.test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.ServerPort)
	assert.Equal(t, 1, cfg.MaxPages)
	assert.False(t, cfg.RemoveCommas)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "max_pages: [1, 2"))
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("MAX_FILE_SIZE", "ten megabytes")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "MAX_FILE_SIZE")
	})

	t.Run("non positive limit", func(t *testing.T) {
		t.Setenv("MAX_PAGES", "0")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "max_pages")
	})
}
