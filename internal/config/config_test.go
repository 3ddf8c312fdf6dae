package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.False(t, cfg.LogoutOnDenied)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Contains(t, cfg.LogFile, "petdex.log")
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://pets.example.com\nlogout_on_denied: true\nlog_level: debug\nrequest_timeout: 5s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://pets.example.com", cfg.APIURL)
	assert.True(t, cfg.LogoutOnDenied)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://pets.example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	t.Setenv("PETDEX_API_URL", "https://staging.example.com")
	t.Setenv("PETDEX_LOGOUT_ON_DENIED", "true")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", cfg.APIURL)
	assert.True(t, cfg.LogoutOnDenied)
}

func TestRejectsNonPositiveTimeout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("request_timeout: 0s\n"), 0o600))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}

func TestMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [unclosed\n"), 0o600))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}
