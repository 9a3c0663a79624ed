package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string
	DatabaseURL            string
	RedisURL               string
	JWTSecret              string
	LogLevel               string
	AccessTokenTTL         time.Duration
	DBMaxOpenConns         int
	DBMaxIdleConns         int
	DBConnMaxIdle          time.Duration
	DBConnMaxLife          time.Duration
	RequestTimeout         time.Duration
	NotifyPollInterval     time.Duration
	ApplyRateLimitPerMin   int
	AttachmentsBaseURL     string
	AttachmentsInternalKey string
	AttachmentsTimeout     time.Duration
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		LogLevel:               envOr("LOG_LEVEL", "info"),
		AccessTokenTTL:         durationOr("ACCESS_TOKEN_TTL", 15*time.Minute),
		DBMaxOpenConns:         intOr("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:         intOr("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:          durationOr("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:          durationOr("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout:         durationOr("REQUEST_TIMEOUT", 10*time.Second),
		NotifyPollInterval:     durationOr("NOTIFY_POLL_INTERVAL", 30*time.Second),
		ApplyRateLimitPerMin:   intOr("APPLY_RATE_LIMIT_PER_MIN", 3),
		RedisURL:               envOr("REDIS_URL", ""),
		AttachmentsBaseURL:     envOr("ATTACHMENTS_BASE_URL", ""),
		AttachmentsInternalKey: envOr("ATTACHMENTS_INTERNAL_KEY", ""),
		AttachmentsTimeout:     durationOr("ATTACHMENTS_TIMEOUT", 10*time.Second),
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))

	missing := make([]string, 0, 2)
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if cfg.NotifyPollInterval <= 0 {
		return Config{}, fmt.Errorf("NOTIFY_POLL_INTERVAL must be positive")
	}
	if cfg.ApplyRateLimitPerMin <= 0 {
		return Config{}, fmt.Errorf("APPLY_RATE_LIMIT_PER_MIN must be positive")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func intOr(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
