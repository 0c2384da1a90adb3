package config

import (
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded automatically by godotenv before the
// lookups run.
//
// Recognized variables:
//
//	MALL_BASE_URL          API root
//	MALL_DB_PATH           sqlite database path
//	MALL_REQUEST_TIMEOUT   duration, e.g. "15s"
//	MALL_SEARCH_DEBOUNCE   duration, e.g. "300ms"
//	MALL_SEARCH_CACHE_TTL  duration, e.g. "30s"
//	MALL_LOG_LEVEL         debug | info | warn | error
func parseEnv(cfg *Config) {
	if v := os.Getenv("MALL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MALL_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("MALL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	setDurationEnv("MALL_REQUEST_TIMEOUT", &cfg.RequestTimeout)
	setDurationEnv("MALL_SEARCH_DEBOUNCE", &cfg.SearchDebounce)
	setDurationEnv("MALL_SEARCH_CACHE_TTL", &cfg.SearchCacheTTL)
}

func setDurationEnv(name string, dst *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}
