// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultIdempotencyTTL = 24 * time.Hour
	defaultSeedAuctions   = 3
)

// Config holds everything main needs to wire the server.
// An empty DBPath selects in-memory repositories and an empty RedisAddr
// selects the in-memory idempotency store.
type Config struct {
	Port           string
	LogLevel       string
	DBPath         string
	RedisAddr      string
	IdempotencyTTL time.Duration
	SeedAuctions   int
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads the configuration using os.Getenv
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:           valueOr(getenv("PORT"), defaultPort),
		LogLevel:       valueOr(getenv("LOG_LEVEL"), defaultLogLevel),
		DBPath:         getenv("DB_PATH"),
		RedisAddr:      getenv("REDIS_ADDR"),
		IdempotencyTTL: defaultIdempotencyTTL,
		SeedAuctions:   defaultSeedAuctions,
	}

	if v := getenv("IDEMPOTENCY_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("config: invalid IDEMPOTENCY_TTL %q", v)
		}
		cfg.IdempotencyTTL = ttl
	}

	if v := getenv("SEED_AUCTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("config: invalid SEED_AUCTIONS %q", v)
		}
		cfg.SeedAuctions = n
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
