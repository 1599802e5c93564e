package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig builds a MySQL configuration for integration tests from TEST_DB_* variables.
//
// It returns nil without an error when TEST_DB_HOST is unset so callers can skip MySQL-only tests.
func LoadTestConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		return nil, nil
	}

	dbPort, err := strconv.Atoi(getEnv("TEST_DB_PORT", "3306"))
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}

	cfg := &Config{Env: "test"}
	cfg.Database = DatabaseConfig{
		Driver:   DriverMySQL,
		Host:     dbHost,
		Port:     dbPort,
		User:     getEnv("TEST_DB_USER", "root"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		DBName:   getEnv("TEST_DB_NAME", "stiles_test"),
	}

	return cfg, nil
}
