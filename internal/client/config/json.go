package config

import (
	"encoding/json"
	"os"

	"github.com/mcom-mall/mallcli/internal/flagx"
	"github.com/mcom-mall/mallcli/internal/timex"
)

// jsonConfig is the DTO for the optional JSON config file. Durations accept
// either strings like "300ms" or integer nanoseconds (see timex.Duration).
type jsonConfig struct {
	BaseURL             string         `json:"base_url"`
	DatabasePath        string         `json:"database_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	SearchDebounce      timex.Duration `json:"search_debounce"`
	SearchCacheTTL      timex.Duration `json:"search_cache_ttl"`
	SearchLimit         int            `json:"search_limit"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogLevel            string         `json:"log_level"`
}

// parseJSON overlays Config with values from the file named by -c/-config.
// No file flag means no overlay. Only fields present in the file override.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.SearchCacheTTL.Duration != 0 {
		cfg.SearchCacheTTL = jc.SearchCacheTTL.Duration
	}
	if jc.SearchLimit != 0 {
		cfg.SearchLimit = jc.SearchLimit
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
