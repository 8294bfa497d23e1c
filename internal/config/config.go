package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/anhtn-dev/storefront/pkg/database"
	"github.com/anhtn-dev/storefront/pkg/mailer"
)

// Config holds all runtime configuration for the API process
type Config struct {
	AppEnv   string
	HTTPPort string
	LogLevel string

	Database database.Config
	SMTP     mailer.Config

	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	OTPExpiryMinutes int

	TracingEnabled bool
	JaegerEndpoint string
}

// Load reads configuration from .env (when present) and the environment
func Load() Config {
	// Missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		SMTP: mailer.Config{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", "no-reply@storefront.local"),
		},

		JWTAccessSecret:  getEnv("JWT_SECRET", "dev-access-secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret"),
		JWTAccessTTL:     getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		JWTRefreshTTL:    getDuration("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour),

		OTPExpiryMinutes: getInt("OTP_EXPIRY_MINUTES", 5),

		TracingEnabled: getBool("TRACING_ENABLED", false),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}
}

// IsDevelopment reports whether the process runs with development defaults
func (c Config) IsDevelopment() bool {
	return c.AppEnv != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
