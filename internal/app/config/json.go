package config

import (
	"encoding/json"
	"os"

	"github.com/quietpage/quietpage/internal/flagx"
	"github.com/quietpage/quietpage/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the delay either as a string like
// "1500ms" or as integer nanoseconds.
type JSONConfig struct {
	Store        string         `json:"store"`
	StorePath    string         `json:"store_path"`
	LogLevel     string         `json:"log_level"`
	ConfirmDelay timex.Duration `json:"confirm_delay"`
}

// parseJSON overlays Config with values from the file named by -c/-config.
// No flag, no file, no overlay. Only fields present in the JSON override.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Store != "" {
		cfg.Store = Backend(jc.Store)
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.ConfirmDelay.Duration != 0 {
		cfg.ConfirmDelay = jc.ConfirmDelay.Duration
	}
}
