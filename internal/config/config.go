// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// RefreshInterval is how often the power log is re-analyzed.
	RefreshInterval time.Duration

	// PmsetPath is the pmset binary to invoke.
	PmsetPath string

	// LogFile, when set, switches acquisition to reading (and
	// watching) a saved power log instead of running pmset.
	LogFile string

	// HistorySize bounds the in-session snapshot history.
	HistorySize int

	// Notify enables desktop notifications.
	Notify bool

	// DrainAlertThreshold is the screen drain rate, in percentage
	// points per hour, above which a notification is sent.
	DrainAlertThreshold float64
}

// Default values
const (
	defaultRefreshInterval     = 15 * time.Minute
	defaultHistorySize         = 96
	defaultDrainAlertThreshold = 20.0
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		RefreshInterval:     getEnvDuration("BATGLANCE_REFRESH_INTERVAL", defaultRefreshInterval),
		PmsetPath:           getEnvString("BATGLANCE_PMSET_PATH", "pmset"),
		LogFile:             getEnvString("BATGLANCE_LOG_FILE", ""),
		HistorySize:         getEnvInt("BATGLANCE_HISTORY_SIZE", defaultHistorySize),
		Notify:              getEnvBool("BATGLANCE_NOTIFY", true),
		DrainAlertThreshold: getEnvFloat("BATGLANCE_DRAIN_ALERT", defaultDrainAlertThreshold),
	}

	if cfg.RefreshInterval < time.Minute {
		cfg.RefreshInterval = time.Minute
	}
	if cfg.HistorySize < 1 {
		cfg.HistorySize = defaultHistorySize
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "batglance", ".env"),
			filepath.Join(home, ".batglance.env"),
		)
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns
// the default. Accepts values like "15m", "90s", or bare seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
