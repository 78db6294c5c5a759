package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avelichko/petbook/internal/flagx"
	"github.com/avelichko/petbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "25m"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	MediaBaseURL    string         `json:"media_base_url"`
	DatabasePath    string         `json:"database_path"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
	PageSize        int            `json:"page_size"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. Absent file path means no JSON stage. Fields left
// zero in the file keep their current value.
//
// Intended usage is: defaults -> env -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.MediaBaseURL != "" {
		cfg.MediaBaseURL = jc.MediaBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RefreshInterval.Duration != 0 {
		cfg.RefreshInterval = time.Duration(jc.RefreshInterval.Duration)
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
