package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPort, EnvLogLevel, EnvDevelopment, EnvAllowedOrigin} {
		t.Setenv(key, "")
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.False(t, cfg.Development)
}

func TestLoadServerConfig_Environment(t *testing.T) {
	clearServerEnv(t)
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDevelopment, "true")
	t.Setenv(EnvAllowedOrigin, "http://localhost:3000")

	cfg, err := LoadServerConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Development)
	assert.Equal(t, "http://localhost:3000", cfg.AllowedOrigin)
}

func TestLoadServerConfig_EnvFile(t *testing.T) {
	clearServerEnv(t)
	t.Setenv(EnvLogLevel, "warn")
	// godotenv only fills variables that are not set at all
	require.NoError(t, os.Unsetenv(EnvAllowedOrigin))
	t.Cleanup(func() { os.Unsetenv(EnvAllowedOrigin) })

	path := writeFile(t, ".env", "TAXBERG_ALLOWED_ORIGIN=https://taxberg.example\nTAXBERG_LOG_LEVEL=error\n")
	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://taxberg.example", cfg.AllowedOrigin)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over the file")
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	clearServerEnv(t)
	t.Setenv(EnvDevelopment, "sometimes")
	_, err := LoadServerConfig("")
	assert.ErrorContains(t, err, EnvDevelopment)

	clearServerEnv(t)
	t.Setenv(EnvPort, "http")
	_, err = LoadServerConfig("")
	assert.ErrorContains(t, err, "must be numeric")
}
