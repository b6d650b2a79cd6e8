package sdk

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds the total time of a single request.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.rest.SetTimeout(d)
		return nil
	}
}

// WithDebug logs every request and response at debug level.
// Request bodies include passwords; keep it off outside development.
func WithDebug(enabled bool) Option {
	return func(c *Client) error {
		c.rest.SetDebug(enabled)
		return nil
	}
}
