package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Backend API
	APIBaseURL string
	APITimeout time.Duration

	// Local preferences
	PrefsDBPath string

	// Display
	DefaultTheme string
}

func Load() *Config {
	return &Config{
		APIBaseURL:   getEnv("FINTRACK_API_URL", "http://127.0.0.1:5000"),
		APITimeout:   getEnvDuration("FINTRACK_API_TIMEOUT", 10*time.Second),
		PrefsDBPath:  getEnv("FINTRACK_PREFS_DB", defaultPrefsPath()),
		DefaultTheme: getEnv("FINTRACK_THEME", "light"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.APIBaseURL == "" {
		errors = append(errors, "API base URL cannot be empty")
	} else if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.APITimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at least 1 second", c.APITimeout))
	} else if c.APITimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at most 5 minutes", c.APITimeout))
	}

	if c.PrefsDBPath == "" {
		errors = append(errors, "preferences database path cannot be empty")
	} else {
		dir := filepath.Dir(c.PrefsDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create preferences directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DefaultTheme != "light" && c.DefaultTheme != "dark" {
		errors = append(errors, fmt.Sprintf("invalid theme '%s': must be 'light' or 'dark'", c.DefaultTheme))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func defaultPrefsPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".fintrack", "prefs.db")
	}
	return "./data/prefs.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
