package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven server settings.
type Config struct {
	Port           string
	Env            string
	StorageBackend string // "memory" or "postgres"
	PostgresURL    string
	JWTSecret      string
}

// Load reads configuration from the environment, with a .env file as an
// optional source for development.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		PostgresURL:    getEnv("POSTGRES_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretjwtkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
