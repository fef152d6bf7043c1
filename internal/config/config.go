package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DataPath     string
	ListenAddr   string
	LockTimeout  time.Duration
	Timezone     string
	AuthDisabled bool
}

func Load() Config {
	initEnvFile()
	cfg := Config{
		DataPath:   os.Getenv("POZNOTE_DATA_PATH"),
		ListenAddr: envOr("POZNOTE_LISTEN_ADDR", "127.0.0.1:8040"),
		Timezone:   envOr("POZNOTE_TIMEZONE", "UTC"),
	}
	cfg.LockTimeout = parseDurationOr("POZNOTE_DB_LOCK_TIMEOUT", 5*time.Second)
	cfg.AuthDisabled = parseBoolOr("POZNOTE_AUTH_DISABLED", false)
	return cfg
}

// Location resolves the configured timezone, falling back to UTC on a bad name.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
