// Package config handles configuration for the client binary, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the reservation client.
//
// Fields:
//   - APIBaseURL: base URL of the reservation API server.
//   - LocalDBPath: sqlite file persisting the session credential.
//   - ErrorDisplayDuration: how long transient error messages stay visible.
type Config struct {
	APIBaseURL           string
	LocalDBPath          string
	ErrorDisplayDuration time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.LocalDBPath = "reserva.db"
	c.ErrorDisplayDuration = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
