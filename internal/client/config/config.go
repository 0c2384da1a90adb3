// Package config holds runtime settings for the mallcli storefront client.
//
// Sources are overlaid in order: built-in defaults, then environment
// variables (a .env file is honored via godotenv), then a JSON file given
// with -c/-config, then command-line flags. Later sources win.
package config

import "time"

// Config is the resolved runtime configuration.
type Config struct {
	// BaseURL is the root of the mcom-mall REST API.
	BaseURL string

	// DatabasePath is the sqlite file holding the session and the search
	// result cache.
	DatabasePath string

	// RequestTimeout bounds each API request end to end.
	RequestTimeout time.Duration

	// SearchDebounce is the quiet interval the interactive search waits
	// for before issuing a request.
	SearchDebounce time.Duration

	// SearchCacheTTL is how long a search response may be served from the
	// local cache. Zero disables caching.
	SearchCacheTTL time.Duration

	// SearchLimit is the page size for search requests.
	SearchLimit int

	// OnlineCheckInterval is how often the client probes API reachability.
	OnlineCheckInterval time.Duration

	// LogLevel is the zap level name: debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://mcom-mall-rest.vercel.app/api/v1"
	c.DatabasePath = "mall.db"
	c.RequestTimeout = 15 * time.Second
	c.SearchDebounce = 300 * time.Millisecond
	c.SearchCacheTTL = 30 * time.Second
	c.SearchLimit = 10
	c.OnlineCheckInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config by applying defaults and overlaying the
// environment, the optional JSON file, and command-line flags, in that
// order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
