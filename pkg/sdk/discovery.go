package sdk

import (
	"github.com/celerix-dev/ivr-reports/internal/config"
)

// FromConfig builds a Client from the loaded configuration.
func FromConfig(cfg *config.Config) (*Client, error) {
	return New(cfg.APIURL,
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithDebug(cfg.Debug),
	)
}
