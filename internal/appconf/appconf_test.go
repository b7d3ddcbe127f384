package appconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL())
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
env: test
port: 9090
upstream:
  baseURL: "http://127.0.0.1:9999/api"
  apiKey: "TEST-KEY"
  timeoutSeconds: 2
cache:
  ttlHours: 1
  maxSize: 4
analytics:
  dbPath: ":memory:"
  adminToken: "secret"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "TEST-KEY", cfg.Upstream.APIKey)
	assert.Equal(t, time.Hour, cfg.Cache.TTL())
	assert.Equal(t, "secret", cfg.Analytics.AdminToken)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "zero port",
			mutate: func(c *Config) { c.Port = 0 },
		},
		{
			name:   "missing api key",
			mutate: func(c *Config) { c.Upstream.APIKey = "" },
		},
		{
			name:   "bad base url",
			mutate: func(c *Config) { c.Upstream.BaseURL = "not a url" },
		},
		{
			name:   "zero ttl",
			mutate: func(c *Config) { c.Cache.TTLHours = 0 },
		},
		{
			name:   "unknown env",
			mutate: func(c *Config) { c.Env = "staging" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BART_PROXY_PORT", "8123")
	t.Setenv("BART_API_KEY", "FROM-ENV")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Port)
	assert.Equal(t, "FROM-ENV", cfg.Upstream.APIKey)
}
