package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort   string
	DatabaseURL  string
	SessionDir   string
	GeminiAPIURL string
	GeminiAPIKey string
	GeminiModel  string
	MaxRetries   int
	RetryDelay   time.Duration
	HistoryLimit int
	DailyQuota   int
}

func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "./fleetchat.db"),
		SessionDir:   getEnv("SESSION_DIR", "./sessions"),
		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		MaxRetries:   getEnvInt("CHAT_MAX_RETRIES", 2),
		RetryDelay:   time.Duration(getEnvInt("CHAT_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		HistoryLimit: getEnvInt("CHAT_HISTORY_LIMIT", 5),
		DailyQuota:   getEnvInt("CHAT_DAILY_QUOTA", 50),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
