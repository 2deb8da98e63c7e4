package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	Environment string
	AppId       string

	// Token lifetime in hours
	TokenTTLHours int

	// Activity log retention in days, purged by the scheduler
	ActivityRetentionDays int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		JWTSecret:             getEnv("JWT_SECRET", "secret"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:                getEnv("DB_NAME", "greenbasket"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		AppId:                 getEnv("APP_ID", "greenbasket"),
		TokenTTLHours:         getEnvInt("TOKEN_TTL_HOURS", 72),
		ActivityRetentionDays: getEnvInt("ACTIVITY_RETENTION_DAYS", 90),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
