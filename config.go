package main

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the backend.
type Config struct {
	Port           string
	MongoURI       string
	MongoDBName    string
	RedisURL       string
	JWTSecret      string
	ChatAPIKey     string
	ChatAPIBase    string
	ChatModel      string
	AllowedOrigins []string
}

// LoadConfig reads configuration from environment variables. Only the
// JWT secret is strictly required; the chat API key is optional and its
// absence disables the Q&A endpoint at request time.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "heavymachinery"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ChatAPIKey:  os.Getenv("CHAT_API_KEY"),
		ChatAPIBase: getEnv("CHAT_API_BASE", "https://api.deepseek.com/v1"),
		ChatModel:   getEnv("CHAT_MODEL", "deepseek-chat"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
