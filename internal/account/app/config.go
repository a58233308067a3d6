package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer       string // Optional: issuer claim for tokens (default: accounts-dev)
	NumKeys      int    // Optional: number of signing keys to generate (default: 3, max: 10)
	DatabaseFile string // Optional: path to SQLite database file (default: ./accounts.db)
	PepperFile   string // Optional: path to pepper for API secret hashing and decoy salts (default: ./pepper)

	TokenTTL     time.Duration // Session token lifetime (default: 15m)
	RecoveryTTL  time.Duration // Recovery token lifetime (default: 1h)
	ChallengeTTL time.Duration // Login challenge lifetime (default: 5m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:       getEnvOrDefault("ACCOUNT_ISSUER", "accounts-dev"),
		NumKeys:      getEnvIntOrDefault("ACCOUNT_NUM_KEYS", 0), // 0 lets the KeyManager pick
		DatabaseFile: getEnvOrDefault("ACCOUNT_DATABASE_FILE", "accounts.db"),
		PepperFile:   getEnvOrDefault("ACCOUNT_PEPPER_FILE", "pepper"),

		TokenTTL:     getEnvDurationOrDefault("ACCOUNT_TOKEN_TTL", 15*time.Minute),
		RecoveryTTL:  getEnvDurationOrDefault("ACCOUNT_RECOVERY_TTL", time.Hour),
		ChallengeTTL: getEnvDurationOrDefault("ACCOUNT_CHALLENGE_TTL", 5*time.Minute),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
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

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
