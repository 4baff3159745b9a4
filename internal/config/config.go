package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server Configuration
	Port string
	Env  string

	// Database Configuration
	DatabaseURL string

	// Challenge Policy
	NeglectThresholdDays  int // days without a wear before an item counts as neglected
	ChallengeDurationDays int
	ChallengeItemCap      int

	// Anti-Consumption Policy
	SavingsRate float64 // share of month-over-month spend reduction counted as savings
}

func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "production"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Challenge policy
		NeglectThresholdDays:  getIntEnv("NEGLECT_THRESHOLD_DAYS", 90),
		ChallengeDurationDays: getIntEnv("CHALLENGE_DURATION_DAYS", 14),
		ChallengeItemCap:      getIntEnv("CHALLENGE_ITEM_CAP", 6),

		// Anti-consumption policy
		SavingsRate: getFloatEnv("SAVINGS_RATE", 0.5),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fallback
		}
		return intVal
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fallback
		}
		return floatVal
	}
	return fallback
}
