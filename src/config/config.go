package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment, loaded once at start.
type Config struct {
	AppPort         string
	MongoURI        string
	RedisURI        string
	CmpBaseURL      string
	CmpTokenURL     string
	CredSealKey     string
	FetchWindow     time.Duration
	FetchMax        int
	SubmitWindow    time.Duration
	SubmitMax       int
	RetryInterval   time.Duration
	CleanupInterval time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	return &Config{
		AppPort:         getEnv("APP_URI", "8888"),
		MongoURI:        os.Getenv("MONGO_URI"),
		RedisURI:        os.Getenv("REDIS_URI"),
		CmpBaseURL:      getEnv("CMP_BASE_URL", "https://api.cmp.example.com"),
		CmpTokenURL:     getEnv("CMP_TOKEN_URL", "https://accounts.cmp.example.com/oauth/token"),
		CredSealKey:     os.Getenv("CRED_SEAL_KEY"),
		FetchWindow:     time.Duration(getEnvInt("FETCH_WINDOW_SEC", 60)) * time.Second,
		FetchMax:        getEnvInt("FETCH_MAX_REQUESTS", 30),
		SubmitWindow:    time.Duration(getEnvInt("SUBMIT_WINDOW_SEC", 60)) * time.Second,
		SubmitMax:       getEnvInt("SUBMIT_MAX_REQUESTS", 5),
		RetryInterval:   time.Duration(getEnvInt("RETRY_INTERVAL_SEC", 60)) * time.Second,
		CleanupInterval: time.Duration(getEnvInt("CLEANUP_INTERVAL_MIN", 60)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
