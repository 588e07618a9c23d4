// ABOUTME: Configuration loader for the zelqora CLI
// ABOUTME: Loads settings from environment variables (and an optional .env file) with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	APIURL            string
	HTTPTimeout       int  // seconds
	SkipSSLValidation bool // explicit opt-in for insecure connections

	// Session
	SessionFile   string
	RefreshLeeway int // seconds before expiry to refresh proactively

	// Messaging
	MessageKey string // shared passphrase for end-to-end message encryption

	// Caching
	CacheTTL int // seconds, for the user directory cache
}

// defaultMessageKey matches the key the web client ships with; override
// via ZELQORA_MESSAGE_KEY in any real deployment.
const defaultMessageKey = "healthcare-system-secure-messaging-key"

func Load() (*Config, error) {
	// Best-effort: a missing .env file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:            ensureScheme(os.Getenv("ZELQORA_API_URL")),
		HTTPTimeout:       getEnvInt("ZELQORA_HTTP_TIMEOUT", 30),
		SkipSSLValidation: getEnvBool("ZELQORA_SKIP_SSL_VALIDATION", false),

		SessionFile:   getEnv("ZELQORA_SESSION_FILE", defaultSessionFile()),
		RefreshLeeway: getEnvInt("ZELQORA_REFRESH_LEEWAY", 30),

		MessageKey: getEnv("ZELQORA_MESSAGE_KEY", defaultMessageKey),

		CacheTTL: getEnvInt("ZELQORA_CACHE_TTL", 300),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("ZELQORA_API_URL is required")
	}
	if cfg.HTTPTimeout < 1 || cfg.HTTPTimeout > 600 {
		return nil, fmt.Errorf("ZELQORA_HTTP_TIMEOUT must be between 1 and 600, got %d", cfg.HTTPTimeout)
	}
	if cfg.RefreshLeeway < 0 || cfg.RefreshLeeway > 3600 {
		return nil, fmt.Errorf("ZELQORA_REFRESH_LEEWAY must be between 0 and 3600, got %d", cfg.RefreshLeeway)
	}

	return cfg, nil
}

// defaultSessionFile places the session under the user config dir,
// falling back to a dotfile in the working directory.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".zelqora-session.json"
	}
	return filepath.Join(dir, "zelqora", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
