// Package config loads service configuration from the environment into an
// explicit Config value that is passed down at startup. Nothing in this
// repo reads configuration ambiently.
package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	AppAddr string
	GinMode string

	// StoreKind selects the persistence backend: "mysql" (default) or
	// "memory" for local runs without a database.
	StoreKind string
	DSN       string

	JWTSecret   string
	AdminAPIKey string
	TokenTTL    time.Duration

	// LockWaitTimeout bounds how long one reservation attempt may wait for
	// the per-train lock before failing with a retryable error.
	LockWaitTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		AppAddr:         getenv("APP_ADDR", ":8080"),
		GinMode:         getenv("GIN_MODE", ""),
		StoreKind:       getenv("STORE", "mysql"),
		DSN:             getenv("DB_DSN", "root:@tcp(127.0.0.1:3306)/railbook?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		JWTSecret:       getenv("JWT_SECRET", "super-secret"),
		AdminAPIKey:     getenv("ADMIN_API_KEY", "admin-api-key"),
		TokenTTL:        getdur("TOKEN_TTL", 24*time.Hour),
		LockWaitTimeout: getdur("LOCK_WAIT_TIMEOUT", 5*time.Second),
	}
	return cfg
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getdur(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
