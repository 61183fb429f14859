package app

import (
	"os"
	"strconv"
	"time"

	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for session tokens (default: propcheck-auth)

	DatabaseFile   string // Path to SQLite database file (default: ./auth.db)
	PepperFile     string // Path to pepper file for password hashing (default: ./pepper)
	SigningKeyFile string // Path to Ed25519 PEM key; generated if missing (default: ./session.key)

	Env       string // Environment (development, staging, production) (default: development)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	SessionTTL       time.Duration // Session token lifetime (default: 30 days)
	LockoutThreshold int           // Failed attempts before lockout (default: 5)
	TwoFactorCodeTTL time.Duration // Emailed code lifetime (default: 10m)

	SMTPAddr string // host:port of the SMTP relay; empty means log-only mail
	SMTPFrom string // From address for two-factor mail

	SentryDSN string // Optional Sentry DSN for error reporting

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer: getEnvOrDefault("AUTH_ISSUER", "propcheck-auth"),

		DatabaseFile:   getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:     getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		SigningKeyFile: getEnvOrDefault("AUTH_SIGNING_KEY_FILE", "session.key"),

		Env:       getEnvOrDefault("ENV", "development"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		SessionTTL:       getEnvDurationOrDefault("AUTH_SESSION_TTL", jwtx.DefaultSessionTTL),
		LockoutThreshold: getEnvIntOrDefault("AUTH_LOCKOUT_THRESHOLD", service.DefaultLockoutThreshold),
		TwoFactorCodeTTL: getEnvDurationOrDefault("AUTH_2FA_CODE_TTL", service.DefaultTwoFactorCodeTTL),

		SMTPAddr: os.Getenv("SMTP_ADDR"),
		SMTPFrom: getEnvOrDefault("SMTP_FROM", "no-reply@propcheck.local"),

		SentryDSN: os.Getenv("SENTRY_DSN"),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are taken as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
