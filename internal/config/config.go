package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr string
	// DBConnString empty means state is kept in memory only.
	DBConnString      string
	ContentAPIURL     string
	ContentBaseURL    string
	AllowedOrigins    []string
	ShutdownTimeout   time.Duration
	HTTPClientTimeout time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	base := envOrDefault("CONTENT_BASE_URL", "https://butanshop.com")
	return Config{
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:      os.Getenv("DB_DSN"),
		ContentAPIURL:     envOrDefault("CONTENT_API_URL", base+"/graphql"),
		ContentBaseURL:    base,
		AllowedOrigins:    envList("ALLOWED_ORIGINS"),
		ShutdownTimeout:   envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		HTTPClientTimeout: envDuration("HTTP_CLIENT_TIMEOUT_SECONDS", 30*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
