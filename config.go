package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the recognition BFF.
type Config struct {
	Port            string
	PlatformAPIURL  string
	RequestTimeout  time.Duration
	UpstreamTimeout time.Duration
	RedisURL        string
	KafkaBrokers    []string
	KafkaTopic      string
	JWTSecret       string
	AllowedOrigins  string
	CacheTTL        time.Duration
}

// LoadConfig reads configuration from the environment, with a local .env
// file honored in development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8085"),
		PlatformAPIURL:  os.Getenv("PLATFORM_API_URL"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT_SECONDS", 30),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT_SECONDS", 10),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "recognition-events"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		CacheTTL:        getEnvDuration("CACHE_TTL_SECONDS", 120),
	}

	if cfg.PlatformAPIURL == "" {
		return nil, fmt.Errorf("PLATFORM_API_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvDuration(key string, fallbackSeconds int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
