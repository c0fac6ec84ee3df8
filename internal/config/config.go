package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	// HTTP server
	Port      string
	DebugMode bool

	// Text generation
	OpenAIAPIKey string
	Model        string
	Temperature  float64

	// Speech synthesis
	TTSProvider      string
	TTSVoice         string
	ElevenLabsAPIKey string
	AWSRegion        string
	GCPProjectID     string

	// Pipeline behavior
	RequestTimeout time.Duration

	// MaxRetries is the per-call retry budget. BRIEFCAST_MAX_RETRIES=0
	// disables retries; unset means 2.
	MaxRetries int
}

// Load reads configuration from environment variables, with an optional
// .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DebugMode:        getEnvBool("DEBUG_MODE", false),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		Model:            getEnv("BRIEFCAST_MODEL", "gpt-4o"),
		Temperature:      getEnvFloat("BRIEFCAST_TEMPERATURE", 0.7),
		TTSProvider:      getEnv("BRIEFCAST_TTS_PROVIDER", "openai"),
		TTSVoice:         os.Getenv("BRIEFCAST_TTS_VOICE"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		GCPProjectID:     os.Getenv("GOOGLE_CLOUD_PROJECT"),
		RequestTimeout:   getEnvDuration("BRIEFCAST_REQUEST_TIMEOUT", 30*time.Second),
		MaxRetries:       getEnvInt("BRIEFCAST_MAX_RETRIES", 2),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
