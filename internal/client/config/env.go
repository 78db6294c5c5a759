package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first (missing file is fine);
// variables already set in the environment win over the file.
//
// Recognized variables:
//
//	PETBOOK_API_BASE_URL
//	PETBOOK_MEDIA_BASE_URL
//	PETBOOK_DB_PATH
//	PETBOOK_REFRESH_INTERVAL  (Go duration, e.g. "25m")
//	PETBOOK_PAGE_SIZE
//	PETBOOK_LOG_LEVEL
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PETBOOK_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("PETBOOK_MEDIA_BASE_URL"); v != "" {
		cfg.MediaBaseURL = v
	}
	if v := os.Getenv("PETBOOK_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("PETBOOK_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RefreshInterval = d
		}
	}
	if v := os.Getenv("PETBOOK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("PETBOOK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
