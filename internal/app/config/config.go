// Package config loads runtime settings for the quietpage CLI.
package config

import "time"

// Backend names a storage backend.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Config holds runtime settings.
//
// Fields:
//   - Store: which KeyValueStore backend persists state.
//   - StorePath: path of the store file (JSON) or database (sqlite).
//   - LogLevel: debug, info, warn or error.
//   - ConfirmDelay: how long transient confirmation banners linger before
//     the next screen renders.
type Config struct {
	Store        Backend
	StorePath    string
	LogLevel     string
	ConfirmDelay time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Store = BackendFile
	c.StorePath = "quietpage.json"
	c.LogLevel = "warn"
	c.ConfirmDelay = 1500 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file, if present), a JSON config
// file (-c), and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
