// Package config holds runtime settings for the Petbook CLI and the layered
// loading of those settings.
package config

import "time"

// Config holds runtime settings for the Petbook client.
//
// Fields:
//   - APIBaseURL: versioned REST base, e.g. "https://petbook.example/api/v1".
//   - MediaBaseURL: base used to resolve relative media paths.
//   - DatabasePath: sqlite file holding the persisted client keys.
//   - RefreshInterval: cadence of the access-token renewal timer.
//   - PageSize: feed page size.
//   - LogLevel: zerolog level name for the CLI logger.
type Config struct {
	APIBaseURL      string
	MediaBaseURL    string
	DatabasePath    string
	RefreshInterval time.Duration
	PageSize        int
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api/v1"
	c.MediaBaseURL = "http://127.0.0.1:8000"
	c.DatabasePath = "petbook.db"
	c.RefreshInterval = 25 * time.Minute
	c.PageSize = 10
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file (if
// provided) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
