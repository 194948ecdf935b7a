// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every tunable the service reads at startup. Empty values
// disable the corresponding integration: no Redis means no action history,
// no database URL means no persistence.
type Config struct {
	RedisAddr   string
	DatabaseURL string
	LogLevel    string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Debug("no .env file loaded")
	}
	return &Config{
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

// ParseLogLevel maps the configured level onto logrus, defaulting to info.
func (c *Config) ParseLogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
