package config

import (
	"flag"
	"os"

	"github.com/mcom-mall/mallcli/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-a string   base URL of the mcom-mall API
//	-b string   path to the local sqlite database
//	-l string   log level (debug, info, warn, error)
//
// Arguments are filtered to the flags handled here so other packages can
// define their own without conflicts.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the mcom-mall API")
	fs.StringVar(&cfg.DatabasePath, "b", cfg.DatabasePath, "path to the local sqlite database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
