package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Usage    UsageConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	EventsTopic  string
}

type AIConfig struct {
	Provider       string // "ollama" or "gemini"
	Model          string // e.g. "llama3", "gemini-1.5-flash"
	OllamaBaseURL  string
	RequestTimeout time.Duration
}

type UsageConfig struct {
	DailyGenerationLimit int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EventsTopic:  getEnv("DOMAIN_EVENTS_TOPIC_NAME", "DOMAIN_EVENTS"),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "ollama"),
			Model:         getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			// The frontend HTTP client times out around 10s; keep the model
			// call on the same budget unless overridden.
			RequestTimeout: time.Duration(getEnvAsInt("AI_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Usage: UsageConfig{
			DailyGenerationLimit: getEnvAsInt("AI_DAILY_GENERATION_LIMIT", 50),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
