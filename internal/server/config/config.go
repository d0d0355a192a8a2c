// Package config loads runtime settings for the storefront server from the
// environment. A local .env file is honored when present, which keeps
// development setups out of the shell profile.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// DatabaseDSN is the PostgreSQL connection string. Empty selects the
	// in-memory store, which is useful for demos and tests only.
	DatabaseDSN string
	// SecretKey signs access tokens.
	SecretKey string
	// MediaBaseURL prefixes product image paths in API responses consumed by
	// web clients. Paths are served relative when empty.
	MediaBaseURL string

	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
}

func (c *Config) loadDefaults() {
	c.Addr = ":8000"
	c.SecretKey = "insecure-dev-secret"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 30 * 24 * time.Hour
}

// LoadConfig builds a Config from defaults overlaid by the environment.
func LoadConfig() *Config {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.loadDefaults()

	if v := os.Getenv("SHOPKART_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SHOPKART_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SHOPKART_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("SHOPKART_MEDIA_BASE_URL"); v != "" {
		cfg.MediaBaseURL = v
	}
	if v := os.Getenv("SHOPKART_ACCESS_TOKEN_TTL_MIN"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("SHOPKART_REFRESH_TOKEN_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.RefreshTokenValidityDuration = time.Duration(hours) * time.Hour
		}
	}
	return cfg
}
