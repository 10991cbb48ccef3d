// Package config loads runtime settings for the bankport CLI.
//
// Sources are applied in order, later ones winning: built-in defaults, a JSON
// config file (-c/-config), environment variables (optionally from a .env
// file), and command-line flags.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerBaseURL: root of the portal API, e.g. "http://localhost:8000".
//     Resolved once at startup; every request goes through it.
//   - RequestTimeout: transport timeout for a single request.
//   - CacheDBPath: SQLite file holding the durable session cache.
//   - HistoryPageSize: how many ledger entries one "history" call fetches.
type Config struct {
	ServerBaseURL   string
	RequestTimeout  time.Duration
	CacheDBPath     string
	HistoryPageSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.CacheDBPath = "bankport.db"
	c.HistoryPageSize = 100
}

// LoadConfig constructs a Config, applies defaults, then overlays JSON file,
// environment, and flag values in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
