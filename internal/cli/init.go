// Package cli provides common CLI initialization utilities shared by the
// fintrack subcommands.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/prefs"
)

// SetupLogger initializes structured logging with default settings and
// sets it as the process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	return cfg
}

// OpenPrefs opens the local preference store, exiting the process on
// failure.
func OpenPrefs(logger *log.Logger, cfg *config.Config) *prefs.Store {
	store, err := prefs.Open(cfg.PrefsDBPath, cfg.DefaultTheme)
	if err != nil {
		logger.Error("Failed to open preference store",
			log.FieldError, err.Error(), log.FieldPath, cfg.PrefsDBPath)
		os.Exit(1)
	}
	return store
}
