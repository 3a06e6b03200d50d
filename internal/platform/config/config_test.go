package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PHONE_API_ADDR", "")
	t.Setenv("DATABASE_URI", "")
	t.Setenv("PHONE_API_CONFIG", filepath.Join(t.TempDir(), "missing.properties"))

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURI, "no env and no file selects the memory store")
}

func TestFromEnvPrefersEnvironment(t *testing.T) {
	t.Setenv("PHONE_API_ADDR", ":9090")
	t.Setenv("DATABASE_URI", "postgres://env/phones")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://env/phones", cfg.DatabaseURI)
}

func TestFromEnvFallsBackToPropertiesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.properties")
	content := "database.uri = postgres://file/phones\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DATABASE_URI", "")
	t.Setenv("PHONE_API_CONFIG", path)

	cfg := FromEnv()
	assert.Equal(t, "postgres://file/phones", cfg.DatabaseURI)
}
