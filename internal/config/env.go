package config

import (
	"os"

	"github.com/nibzard/todue/internal/utils"
)

// loadFromEnv overrides config from TODUE_* environment variables. Values
// that fail to parse are ignored.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODUE_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("TODUE_PREF_BACKEND"); v != "" {
		cfg.PrefBackend = v
	}
	if v := os.Getenv("TODUE_PREF_FILE"); v != "" {
		cfg.PrefFile = v
	}
	if v := os.Getenv("TODUE_SWEEP_INTERVAL"); v != "" {
		var d Duration
		if err := d.Set(v); err == nil {
			cfg.SweepInterval = d
		}
	}
	if v := os.Getenv("TODUE_DATE_FORMAT"); v != "" {
		cfg.DateFormat = v
	}
	if v := os.Getenv("TODUE_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	// Logging configuration
	if v := os.Getenv("TODUE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODUE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODUE_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
	}
	if v := os.Getenv("TODUE_LOG_CALLER"); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
	}
}
