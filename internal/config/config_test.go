package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"API_URL", "IVR_API_URL", "PAGE_SIZE", "IVR_PAGE_SIZE", "HTTP_PORT", "IVR_HTTP_PORT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("IVR_DATA_DIR", "/tmp/ivr-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", cfg.APIURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 7002, cfg.HTTPPort)
}

func TestLoad_EmptyAPIURLRejected(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("IVR_API_URL", "")
	t.Setenv("IVR_DATA_DIR", "/tmp/ivr-test")

	cfg, err := Load()
	require.Error(t, err, "explicitly empty API_URL must be rejected")
	assert.Nil(t, cfg)
}

func TestLoad_BareAPIURL(t *testing.T) {
	t.Setenv("API_URL", "http://backend:9000")
	t.Setenv("IVR_DATA_DIR", "/tmp/ivr-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.APIURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ":7002", cfg.Addr())
	assert.Equal(t, "/tmp/ivr-test", cfg.DataDir)
}

func TestLoad_PrefixedWins(t *testing.T) {
	t.Setenv("API_URL", "http://bare")
	t.Setenv("IVR_API_URL", "http://prefixed")
	t.Setenv("IVR_PAGE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://prefixed", cfg.APIURL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestValidate(t *testing.T) {
	base := Config{APIURL: "http://x", PageSize: 25, HTTPTimeout: time.Second, LogLevel: "info"}
	require.NoError(t, base.Validate())

	tests := map[string]func(c *Config){
		"EmptyURL":  func(c *Config) { c.APIURL = "" },
		"ZeroPage":  func(c *Config) { c.PageSize = 0 },
		"NoTimeout": func(c *Config) { c.HTTPTimeout = 0 },
		"BadLevel":  func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLevel(t *testing.T) {
	c := Config{LogLevel: "debug"}
	lvl, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}
