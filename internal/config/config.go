// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the planner server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// BackendURL is the base address of the trip backend every gateway call
	// goes to. Defaults to "http://localhost:4000".
	BackendURL string

	// DatabaseURL is the Postgres connection string for persisted session
	// credentials. Optional: when empty, credentials are kept in memory.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// NotificationTTL is how long a toast stays before it expires on its own.
	// Defaults to 5s. Set NOTIFICATION_TTL_MS to override.
	NotificationTTL time.Duration

	// RedirectDelay is the pause between a successful save/delete and the
	// navigation to the dashboard. Defaults to 1.5s. REDIRECT_DELAY_MS.
	RedirectDelay time.Duration

	// BackendTimeout bounds each trip backend call. Defaults to 0, which
	// leaves only the transport defaults. BACKEND_TIMEOUT_MS.
	BackendTimeout time.Duration

	// MaxBodyBytes caps request bodies accepted from the browser.
	// Defaults to 1 MiB. MAX_BODY_BYTES.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every variable whose value could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		BackendURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:4000"), "/"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var invalid []string

	ttl, err := getMillis("NOTIFICATION_TTL_MS", 5000)
	if err != nil {
		invalid = append(invalid, "NOTIFICATION_TTL_MS")
	}
	cfg.NotificationTTL = ttl

	delay, err := getMillis("REDIRECT_DELAY_MS", 1500)
	if err != nil {
		invalid = append(invalid, "REDIRECT_DELAY_MS")
	}
	cfg.RedirectDelay = delay

	backendTimeout, err := getMillis("BACKEND_TIMEOUT_MS", 0)
	if err != nil {
		invalid = append(invalid, "BACKEND_TIMEOUT_MS")
	}
	cfg.BackendTimeout = backendTimeout

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = maxBody

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set.
// A missing file is not an error; the server is usually configured through
// the real environment in production.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config.LoadDotEnv: %s: %w", p, err)
		}
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getMillis parses a non-negative millisecond count from key.
func getMillis(key string, fallback int) (time.Duration, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil || n < 0 {
		return time.Duration(fallback) * time.Millisecond, fmt.Errorf("%s: invalid duration", key)
	}
	return time.Duration(n) * time.Millisecond, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
