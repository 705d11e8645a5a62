// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Stage is the deployment stage: "dev" or "prod". It drives cookie
	// security flags, the default table name suffix, and whether the
	// Slack registration notification fires.
	Stage string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Auth holds session token and cookie settings.
	Auth AuthConfig

	// Store holds DynamoDB user table settings.
	Store StoreConfig

	// Redis holds Redis connection settings (rate limiting).
	Redis RedisConfig

	// SlackWebhookURL is the incoming-webhook endpoint for registration
	// notifications. Empty disables the sink even in prod.
	SlackWebhookURL string
}

// AuthConfig holds session token and cookie settings.
type AuthConfig struct {
	// JWTSecret is the HS256 signing key. Required in prod.
	JWTSecret string

	// TokenTTL is the validity window of an issued session token.
	TokenTTL time.Duration

	// CookieMaxAge is the session cookie lifetime. Deliberately longer
	// than TokenTTL: the cookie may outlive a valid token, and the gate
	// treats an expired token like an absent cookie.
	CookieMaxAge time.Duration
}

// StoreConfig holds DynamoDB connection settings for the user table.
type StoreConfig struct {
	// Region is the AWS region the table lives in.
	Region string

	// TableName is the user table (default: "hywep-users-<stage>").
	TableName string

	// EmailIndex is the GSI used for login lookups and duplicate checks.
	EmailIndex string
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing for the stage.
func Load() (*Config, error) {
	stage := getEnv("STAGE", "dev")

	cfg := &Config{
		Stage:    stage,
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvDuration("TOKEN_TTL", time.Hour),
			CookieMaxAge: getEnvDuration("COOKIE_MAX_AGE", 7*24*time.Hour),
		},

		Store: StoreConfig{
			Region:     getEnv("AWS_REGION", "ap-northeast-2"),
			TableName:  getEnv("USERS_TABLE", "hywep-users-"+stage),
			EmailIndex: getEnv("EMAIL_INDEX", "email-index"),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
	}

	if cfg.Production() {
		if cfg.Auth.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in prod")
		}
		if len(cfg.Auth.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters in prod")
		}
	}

	// Dev-only default secret so local dev works without a .env file.
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-key-do-not-use-in-prod!!!"
	}

	return cfg, nil
}

// Production returns true if running in the prod stage. Case-insensitive
// check catches common variants like "Prod" or "PRODUCTION".
func (c *Config) Production() bool {
	s := strings.ToLower(c.Stage)
	return s == "prod" || s == "production"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "1h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
