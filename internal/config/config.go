package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application settings. Loaded once at startup from the
// environment and treated as immutable afterwards.
type Config struct {
	// Server
	Addr string

	// Database
	DSN string

	// Auth
	SigningKey string
	TokenTTL   time.Duration
	BcryptCost int
}

const (
	defaultAddr = ":8000"
	defaultDSN  = "file:todos.db?_pragma=foreign_keys(1)"
	defaultTokenTTL = 20 * time.Minute
)

// Load reads the configuration from environment variables. SIGNING_KEY is
// required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:     getenv("ADDR", defaultAddr),
		DSN:      getenv("DATABASE_DSN", defaultDSN),
		TokenTTL: defaultTokenTTL,
	}

	cfg.SigningKey = os.Getenv("SIGNING_KEY")
	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("required environment variable SIGNING_KEY is not set")
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		cfg.TokenTTL = ttl
	}

	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q: %w", raw, err)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
