package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "https://mcom-mall-rest.vercel.app/api/v1", cfg.BaseURL)
	require.Equal(t, "mall.db", cfg.DatabasePath)
	require.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	require.Equal(t, 30*time.Second, cfg.SearchCacheTTL)
	require.Equal(t, 10, cfg.SearchLimit)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("MALL_BASE_URL", "https://staging.example.org/api/v1")
	t.Setenv("MALL_SEARCH_DEBOUNCE", "150ms")
	t.Setenv("MALL_LOG_LEVEL", "debug")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	require.Equal(t, "https://staging.example.org/api/v1", cfg.BaseURL)
	require.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	require.Equal(t, "debug", cfg.LogLevel)
	// Untouched fields keep their defaults.
	require.Equal(t, "mall.db", cfg.DatabasePath)
}

func TestParseEnv_InvalidDurationIgnored(t *testing.T) {
	t.Setenv("MALL_REQUEST_TIMEOUT", "soon")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseJSON_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_url": "http://localhost:3000/api/v1",
		"search_debounce": "200ms",
		"search_limit": 25
	}`), 0o600))

	origArgs := os.Args
	os.Args = []string{"mallcli", "-c", path}
	t.Cleanup(func() { os.Args = origArgs })

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	require.Equal(t, "http://localhost:3000/api/v1", cfg.BaseURL)
	require.Equal(t, 200*time.Millisecond, cfg.SearchDebounce)
	require.Equal(t, 25, cfg.SearchLimit)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"mallcli", "-a", "http://localhost:9999", "-l", "warn"}
	t.Cleanup(func() { os.Args = origArgs })

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	require.Equal(t, "http://localhost:9999", cfg.BaseURL)
	require.Equal(t, "warn", cfg.LogLevel)
}
