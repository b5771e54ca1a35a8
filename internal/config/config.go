package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string

	RedisAddr string

	NotifyFrom     string
	NotifyFromName string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPass       string

	RateLimitRPS   float64
	RateLimitBurst int

	// Seed for the demo randomness source. Zero means non-deterministic.
	DemoSeed int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		NotifyFrom:     getEnv("NOTIFY_FROM", "noreply@mzansipass.co.za"),
		NotifyFromName: getEnv("NOTIFY_FROM_NAME", "MzansiPass"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		DemoSeed: int64(getEnvInt("DEMO_SEED", 0)),
	}

	return cfg, nil
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
