// Package config loads the IVR reports settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is the environment prefix. Every variable is read as IVR_<NAME>
// first and falls back to the bare <NAME>, so API_URL works on its own.
const Prefix = "IVR"

// Config holds the settings shared by ivrctl and ivr-dashboard.
type Config struct {
	// Backend API root.
	APIURL string `envconfig:"API_URL" default:"http://localhost:3001"`

	// Dashboard daemon listen port.
	HTTPPort int `envconfig:"HTTP_PORT" default:"7002"`

	// Where the CLI keeps its session slot. Empty means the user cache dir.
	DataDir string `envconfig:"DATA_DIR"`

	// Where the CLI writes CSV exports.
	ExportDir string `envconfig:"EXPORT_DIR" default:"."`

	PageSize    int           `envconfig:"PAGE_SIZE" default:"25"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// A missing .env is normal; values already in the environment win.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults fills values that depend on the host.
func (c *Config) ResolveDefaults() error {
	if c.DataDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		c.DataDir = filepath.Join(base, "ivr-reports")
	}
	return nil
}

// Validate rejects settings the tools cannot run with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL must not be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be > 0, got %d", c.PageSize)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Addr is the daemon listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
