// Package config loads coursenav settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all runtime settings.
type Config struct {
	DBPath        string
	LogLevel      string
	LogFormat     string
	LogUseCases   bool
	MaxDepth      int
	SkipSolutions bool
	UserID        string
}

// DefaultConfig returns a Config with defaults applied. The database lives
// under ~/.coursenav unless the home directory cannot be resolved, in which
// case the working directory is used.
func DefaultConfig() Config {
	dbPath := filepath.Join(".coursenav", "coursenav.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".coursenav", "coursenav.db")
	}
	return Config{
		DBPath:    dbPath,
		LogLevel:  "warn",
		LogFormat: "console",
		MaxDepth:  3,
		UserID:    "local",
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or invalid values.
func Load() Config {
	return LoadFrom(os.Getenv)
}

// LoadFrom is Load with an injectable lookup, for tests.
func LoadFrom(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if v := getenv("COURSENAV_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := strings.ToLower(getenv("COURSENAV_LOG_LEVEL")); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = v
		}
	}
	if v := strings.ToLower(getenv("COURSENAV_LOG_FORMAT")); v == "console" || v == "json" {
		cfg.LogFormat = v
	}
	if v := getenv("COURSENAV_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := getenv("COURSENAV_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 3 {
			cfg.MaxDepth = n
		}
	}
	if v := getenv("COURSENAV_SKIP_SOLUTIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SkipSolutions = b
		}
	}

	if v := strings.TrimSpace(getenv("COURSENAV_USER")); v != "" {
		cfg.UserID = v
	}

	return cfg
}
