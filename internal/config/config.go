package config

import (
	"os"
	"strconv"
)

// StoreType selects the character store backend
type StoreType string

const (
	StoreRedis  StoreType = "redis"
	StoreMemory StoreType = "memory"
)

// Config holds the application configuration
type Config struct {
	// DataDir is the root of the rule catalog (JSON documents)
	DataDir string

	Store StoreType

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:       getEnvOrDefault("CHARFORGE_DATA_DIR", "data"),
		Store:         StoreType(getEnvOrDefault("CHARFORGE_STORE", string(StoreRedis))),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsIntOrDefault("REDIS_DB", 0),
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
