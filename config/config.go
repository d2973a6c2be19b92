package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Public base URL of the app, used when building links sent to users
	AppBaseURL string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Unsplash image search; empty key disables recipe images
	UnsplashAccessKey string
}

// LoadConfig creates a new Config instance from environment variables,
// falling back to Docker secrets for sensitive values.
func LoadConfig() (*Config, error) {
	if IsDevelopment() {
		// .env is optional; ignore a missing file
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     envOrSecret("DB_USER", "db_user"),
		DBPassword: envOrSecret("DB_PASSWORD", "db_password"),
		DBName:     getEnv("DB_NAME", "dishly"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: envOrSecret("REDIS_PASSWORD", "redis_password"),
		RedisDB:       0,
		RedisURL:      getEnv("REDIS_URL", ""),

		JWTSecret: envOrSecret("JWT_SECRET", "jwt_secret"),

		UnsplashAccessKey: envOrSecret("UNSPLASH_ACCESS_KEY", "unsplash_access_key"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSpace(o))
		}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envOrSecret reads the environment variable first, then the Docker secret
// of the same meaning.
func envOrSecret(envKey, secretName string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
