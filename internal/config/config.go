package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBDSN string

	// AI provider
	AIProvider        string
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterSiteURL string
	OpenRouterAppName string
	OllamaBaseURL     string
	OllamaModel       string
	ChatTimeoutSecs   int

	// optional infra
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitURL     string
	RabbitQueue   string

	CORSOrigins string
	LogLevel    string
}

func Load() Config {
	// .env is optional; real env wins over file values
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8001"
	}

	// DSN: mysql form app:apppass@tcp(127.0.0.1:3306)/interview?parseTime=true
	// anything else is treated as a sqlite file path
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "data/interview.db"
	}

	aiProvider := os.Getenv("AI_PROVIDER")
	if aiProvider == "" {
		aiProvider = "openrouter"
	}

	openRouterBaseURL := os.Getenv("OPENROUTER_BASE_URL")
	if openRouterBaseURL == "" {
		openRouterBaseURL = "https://openrouter.ai/api/v1"
	}
	openRouterModel := os.Getenv("OPENROUTER_MODEL")
	if openRouterModel == "" {
		openRouterModel = "openai/gpt-4o-mini"
	}

	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "llama3:latest"
	}

	chatTimeout := 60
	if v := os.Getenv("CHAT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			chatTimeout = n
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	rabbitQueue := os.Getenv("RABBIT_QUEUE")
	if rabbitQueue == "" {
		rabbitQueue = "chat_exchanges"
	}

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "*"
	}

	return Config{
		Port:  port,
		DBDSN: dsn,

		AIProvider:        aiProvider,
		OpenRouterBaseURL: openRouterBaseURL,
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   openRouterModel,
		OpenRouterSiteURL: os.Getenv("OPENROUTER_SITE_URL"),
		OpenRouterAppName: os.Getenv("OPENROUTER_APP_NAME"),
		OllamaBaseURL:     ollamaBaseURL,
		OllamaModel:       ollamaModel,
		ChatTimeoutSecs:   chatTimeout,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		RabbitURL:   os.Getenv("RABBIT_URL"),
		RabbitQueue: rabbitQueue,

		CORSOrigins: corsOrigins,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}
}
