// Package config reads service configuration from the environment. The
// binary loads .env first (godotenv), so a local file and real environment
// variables behave the same.
package config

import (
	"os"
	"strconv"

	"propman/internal/mailer"
)

// Config carries every tunable the binary needs.
type Config struct {
	// DatabaseURL is the postgres DSN. Required outside tests.
	DatabaseURL string
	// ListenAddr is the HTTP bind address.
	ListenAddr string
	// JWTSecret signs API tokens.
	JWTSecret string
	// SMTP configures the outbound mail transport.
	SMTP mailer.Config
	// QueueSize bounds the in-memory notification queue.
	QueueSize int
	// Workers is the dispatcher pool size.
	Workers int
}

// Load reads configuration from the environment, applying development
// defaults for everything except the database DSN.
func Load() *Config {
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ListenAddr:  envStr("LISTEN_ADDR", ":8080"),
		JWTSecret:   envStr("JWT_SECRET", "propman-dev-secret"),
		SMTP: mailer.Config{
			Host:     envStr("SMTP_HOST", "localhost"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envStr("SMTP_FROM", "noreply@propman.local"),
		},
		QueueSize: envInt("DISPATCH_QUEUE_SIZE", 256),
		Workers:   envInt("DISPATCH_WORKERS", 2),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
