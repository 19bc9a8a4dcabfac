package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, first merging a .env
// file from the working directory into the environment if one exists.
//
// Variables:
//
//	QUIETPAGE_STORE          file | sqlite
//	QUIETPAGE_STORE_PATH     store file or database path
//	QUIETPAGE_LOG_LEVEL      debug | info | warn | error
//	QUIETPAGE_CONFIRM_DELAY  duration, e.g. "1500ms"
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("QUIETPAGE_STORE"); v != "" {
		cfg.Store = Backend(v)
	}
	if v := os.Getenv("QUIETPAGE_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("QUIETPAGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QUIETPAGE_CONFIRM_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ConfirmDelay = d
		}
	}
}
