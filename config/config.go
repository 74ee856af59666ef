package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the engine runtime defaults.
type Config struct {
	LogLevel           string
	HorizonMonths      int
	Scenario           string
	StressScenario     string
	StressSeverity     string
	AnomalySensitivity float64
	TrendWindow        int
	RandomSeed         uint64 // 0 means seed from the clock
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := Config{
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		HorizonMonths:      getEnvIntWithDefault("FORECAST_HORIZON_MONTHS", 24),
		Scenario:           getEnvWithDefault("FORECAST_SCENARIO", "baseline"),
		StressScenario:     getEnvWithDefault("STRESS_SCENARIO", "combined"),
		StressSeverity:     getEnvWithDefault("STRESS_SEVERITY", "moderate"),
		AnomalySensitivity: getEnvFloatWithDefault("ANOMALY_SENSITIVITY", 2.0),
		TrendWindow:        getEnvIntWithDefault("TREND_WINDOW", 30),
		RandomSeed:         getEnvUintWithDefault("RANDOM_SEED", 0),
	}

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvUintWithDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}
