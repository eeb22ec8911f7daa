package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// HTTP server
	HTTPPort int

	// Durable storage. Postgres URLs use the postgres driver; anything
	// else is a sqlite file path.
	DataDir     string
	DatabaseURL string

	// API keys accepted by the HTTP façade (comma-separated, hashed
	// before storage). Empty disables API-key authentication.
	APIKeys []string

	// AI provider selection and credentials
	AIProvider   string
	OpenAIAPIKey string
	OpenAIModel  string
	GoogleAPIKey string
	GeminiModel  string

	// CLI client selection
	ClientType string
	APIURL     string
	APIKey     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTPPort = getEnvAsIntOrDefault("HTTP_PORT", 8000)

	cfg.DataDir = getEnvOrDefault("OPSVERDICT_DATA_DIR", defaultDataDir())
	cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", filepath.Join(cfg.DataDir, "opsverdict.db"))

	if keys := os.Getenv("OPSVERDICT_API_KEYS"); keys != "" {
		for _, key := range strings.Split(keys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}

	cfg.AIProvider = strings.ToLower(getEnvOrDefault("OPSVERDICT_AI_PROVIDER", "dummy"))
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash")

	cfg.ClientType = strings.ToLower(getEnvOrDefault("OPSVERDICT_CLIENT_TYPE", "local"))
	cfg.APIURL = getEnvOrDefault("OPSVERDICT_API_URL", "http://localhost:8000")
	cfg.APIKey = os.Getenv("OPSVERDICT_API_KEY")

	return cfg, nil
}

// defaultDataDir returns ~/.opsverdict, falling back to a relative
// directory when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".opsverdict"
	}
	return filepath.Join(home, ".opsverdict")
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the value of an environment variable as an integer or a default value
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
