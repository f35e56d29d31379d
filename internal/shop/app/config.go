package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./shop.db)

	AccessTokenSecret  string        // Required: HS256 secret for access tokens
	RefreshTokenSecret string        // Required: HS256 secret for refresh tokens (must differ)
	AccessTokenTTL     time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL    time.Duration // Optional: refresh token lifetime (default: 168h)

	ResendAPIKey string // Required: Resend API key for transactional mail
	MailFrom     string // Optional: From header (default: Cheap Deals <noreply@cheapdeals.example>)
	AppBaseURL   string // Required: frontend base URL used in email links

	Issuer               string        // Optional: issuer claim for tokens (default: cheapdeals-shop)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one is present. Missing required variables are an error so the
// process refuses to boot half-configured.
func LoadConfig() (Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Config{
		DatabaseFile:         getEnvOrDefault("SHOP_DATABASE_FILE", "shop.db"),
		AccessTokenSecret:    os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:   os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:       getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:      getEnvDurationOrDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		MailFrom:             getEnvOrDefault("MAIL_FROM", "Cheap Deals <noreply@cheapdeals.example>"),
		AppBaseURL:           os.Getenv("APP_BASE_URL"),
		Issuer:               getEnvOrDefault("SHOP_ISSUER", "cheapdeals-shop"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	var missing []string
	for _, required := range []struct {
		key   string
		value string
	}{
		{"ACCESS_TOKEN_SECRET", cfg.AccessTokenSecret},
		{"REFRESH_TOKEN_SECRET", cfg.RefreshTokenSecret},
		{"RESEND_API_KEY", cfg.ResendAPIKey},
		{"APP_BASE_URL", cfg.AppBaseURL},
	} {
		if required.value == "" {
			missing = append(missing, required.key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	// Shared secrets would let a refresh token masquerade as an access token.
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
