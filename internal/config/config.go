package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Host string
	Port int

	// Database configuration
	DatabasePath string

	// Ranking configuration
	RankTiePolicy string

	// Metrics configuration
	MetricsEnabled bool
	MetricsHost    string
	MetricsPort    int

	// Logging configuration
	LogLevel string
}

// Valid rank tie policies
const (
	TiePolicyStableInsertion = "stable-insertion"
	TiePolicyByID            = "by-id"
	TiePolicyByRecency       = "by-recency"
)

// Load reads configuration from the environment, with a .env file applied
// first when present. Every value has a default.
func Load() (*Config, error) {
	// Missing .env is fine; env vars alone are enough
	_ = godotenv.Load()

	cfg := &Config{
		Host:           getEnv("HOST", "localhost"),
		Port:           getEnvInt("PORT", 8000),
		DatabasePath:   getEnv("DATABASE_PATH", "./octofit.db"),
		RankTiePolicy:  getEnv("RANK_TIE_POLICY", TiePolicyStableInsertion),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
		MetricsHost:    getEnv("METRICS_HOST", "localhost"),
		MetricsPort:    getEnvInt("METRICS_PORT", 9090),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.RankTiePolicy {
	case TiePolicyStableInsertion, TiePolicyByID, TiePolicyByRecency:
	default:
		return nil, fmt.Errorf("invalid RANK_TIE_POLICY: %q", cfg.RankTiePolicy)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
