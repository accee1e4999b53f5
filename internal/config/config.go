package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	RedisURL     string
	CollabAPIURL string
	Environment  string
	Events       EventConfig
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine in deployed environments.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		CollabAPIURL: getEnv("COLLAB_API_URL", "http://localhost:5000"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		Events: EventConfig{
			Enabled:      getEnv("EVENTS_ENABLED", "true") == "true",
			Publisher:    getEnv("EVENTS_PUBLISHER", "kafka"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			SessionTopic: getEnv("SESSION_EVENTS_TOPIC", "session-events"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
