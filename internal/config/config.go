package config

import (
	"os"
	"strconv"
)

// Storage backends selectable via STORAGE_BACKEND
const (
	StoragePostgres = "postgres"
	StorageBadger   = "badger"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	TablePrefix string
	CORSOrigins string
	JWKSURL     string
	// Storage
	StorageBackend string
	BadgerDir      string
	AutoMigrate    bool
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		TablePrefix:    getTablePrefix(env),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWKSURL:        getEnv("JWKS_URL", ""),
		StorageBackend: getEnv("STORAGE_BACKEND", StoragePostgres),
		BadgerDir:      getEnv("BADGER_DIR", "./data/badger"),
		// Schema bootstrap defaults to on everywhere except prod
		AutoMigrate: getEnv("AUTO_MIGRATE", getDefaultAutoMigrate(env)) == "true",
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
	}
}

// getDefaultAutoMigrate returns the default schema bootstrap setting based on environment
func getDefaultAutoMigrate(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
