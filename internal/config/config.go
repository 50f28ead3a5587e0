package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	GeminiAPIKey    string
	GeminiModel     string
	HTTPPort        string
	TokenExpiration time.Duration
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
// A missing DATABASE_URL, JWT_SECRET, or GEMINI_API_KEY is a fatal
// configuration error, not a runtime-recoverable one.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.")
		// Don't fail if .env is not present, might be in production
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	geminiKey := getEnv("GEMINI_API_KEY", "")
	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	port := getEnv("HTTP_PORT", "8080")
	geminiModel := getEnv("GEMINI_MODEL", "gemini-1.5-flash")

	tokenTTLStr := getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "60")
	tokenTTLMinutes, err := strconv.Atoi(tokenTTLStr)
	if err != nil {
		log.Printf("Warning: Invalid ACCESS_TOKEN_EXPIRE_MINUTES '%s', using default 60. Error: %v", tokenTTLStr, err)
		tokenTTLMinutes = 60
	}

	cfg := &Config{
		DatabaseURL:     dbURL,
		JWTSecret:       jwtSecret,
		GeminiAPIKey:    geminiKey,
		GeminiModel:     geminiModel,
		HTTPPort:        port,
		TokenExpiration: time.Minute * time.Duration(tokenTTLMinutes),
	}

	log.Printf("Loaded config: Port=%s, Model=%s, TokenExp=%s, DB_URL=***, JWT_SECRET=***, GEMINI_API_KEY=***",
		cfg.HTTPPort, cfg.GeminiModel, cfg.TokenExpiration)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
