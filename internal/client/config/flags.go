package config

import (
	"flag"
	"os"
	"time"

	"github.com/avelichko/petbook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API (default from Config)
//	-m string   base URL for media resolution
//	-d string   path to the local client database
//	-r int      token refresh interval in minutes
//	-p int      feed page size
//	-l string   log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-r", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.MediaBaseURL, "m", cfg.MediaBaseURL, "base URL for media resolution")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local client database")
	refreshMinutes := fs.Int("r", int(cfg.RefreshInterval.Minutes()), "token refresh interval (in minutes)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "feed page size")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshInterval = time.Duration(*refreshMinutes) * time.Minute
}
