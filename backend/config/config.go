package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret  string
	SessionTTL time.Duration

	LeetCodeEndpoint   string
	LeetCodeTimeout    time.Duration
	LeetCodeRatePerSec float64
	LeetCodeBurst      int

	LogLevel  string
	LogFormat string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	sessionTTL, err := getEnvDuration("SESSION_TTL", 720*time.Hour)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("LEETCODE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	ratePerSec, err := getEnvFloat("LEETCODE_RATE_PER_SEC", 5)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("LEETCODE_BURST", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "leetstats"),
		SQLitePath:         getEnv("SQLITE_PATH", "leetstats.db"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		SessionTTL:         sessionTTL,
		LeetCodeEndpoint:   getEnv("LEETCODE_API_ENDPOINT", "https://leetcode-stats-api.herokuapp.com/"),
		LeetCodeTimeout:    timeout,
		LeetCodeRatePerSec: ratePerSec,
		LeetCodeBurst:      burst,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
