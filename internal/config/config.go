package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Env         string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	SwaggerHost string

	// Advisor inference backend (Ollama-compatible API).
	OllamaURL    string
	OllamaModel  string
	OllamaAPIKey string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		Env:          getEnv("APP_ENV", "development"),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/invested?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
		OllamaURL:    getEnv("OLLAMA_API_URL", "http://localhost:11434/api/generate"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "llama2"),
		OllamaAPIKey: os.Getenv("OLLAMA_API_KEY"),
	}
}

// IsDevelopment reports whether the process runs in development mode.
// The API documentation routes are only mounted in development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
