package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile         string        // Path to SQLite database file (default: ./forum.db)
	PepperFile           string        // Path to file containing pepper for password hashing (default: ./pepper)
	SessionTTL           time.Duration // Session lifetime (default: 24h)
	CookieName           string        // Session cookie name (default: qa_session)
	CookieSecure         bool          // Set the Secure flag on the session cookie (default: false, enable behind HTTPS)
	CORSOrigin           string        // Allowed browser origin for credentialed requests (optional)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session sweep interval (default: 1h)
}

func LoadConfig() Config {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	return Config{
		DatabaseFile:         getEnvOrDefault("FORUM_DATABASE_FILE", "forum.db"),
		PepperFile:           getEnvOrDefault("FORUM_PEPPER_FILE", "pepper"),
		SessionTTL:           getEnvDurationOrDefault("FORUM_SESSION_TTL", 24*time.Hour),
		CookieName:           getEnvOrDefault("FORUM_COOKIE_NAME", "qa_session"),
		CookieSecure:         getEnvBoolOrDefault("FORUM_COOKIE_SECURE", false),
		CORSOrigin:           os.Getenv("FORUM_CORS_ORIGIN"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
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

	// Permit plain integers, interpreted as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
