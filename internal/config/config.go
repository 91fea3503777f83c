package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrMissingBearerToken = errors.New("TWITTER_BEARER_TOKEN is required")
	ErrInvalidClientMode  = errors.New("invalid client mode")
)

type Config struct {
	Twitter    TwitterConfig
	Log        LogConfig
	Metrics    MetricsConfig
	Search     SearchConfig
	RateLimit  RateLimitConfig
	ClientMode string
}

type TwitterConfig struct {
	BearerToken string
	BaseURL     string
	Timeout     time.Duration
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Addr string
}

type SearchConfig struct {
	Limit   int
	Workers int
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

func Load() (*Config, error) {
	cfg := &Config{
		Twitter: TwitterConfig{
			BearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
			BaseURL:     getEnvOrDefault("TWITTER_BASE_URL", "https://api.twitter.com/2"),
			Timeout:     time.Duration(getEnvIntOrDefault("TWITTER_TIMEOUT_SEC", 30)) * time.Second,
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Addr: getEnvOrDefault("METRICS_ADDR", ":9090"),
		},
		Search: SearchConfig{
			Limit:   getEnvIntOrDefault("SEARCH_LIMIT", 10),
			Workers: getEnvIntOrDefault("SEARCH_WORKERS", 4),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		},
		ClientMode: getEnvOrDefault("CLIENT_MODE", "api"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ClientMode != "api" && c.ClientMode != "mock" {
		return ErrInvalidClientMode
	}
	if c.ClientMode == "api" && c.Twitter.BearerToken == "" {
		return ErrMissingBearerToken
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
