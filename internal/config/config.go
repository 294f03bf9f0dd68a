// Package config loads and validates process configuration from environment
// variables. All values are read once at startup and treated as immutable
// afterwards, so handlers can share the Config across requests without
// locking.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/sakib/vibe-post/internal/crypto"
)

// Config holds every runtime setting. The process refuses to start when a
// required value is absent or malformed; there are no half-configured modes.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// GitHub OAuth app credentials. The redirect URI must match the
	// "Authorization callback URL" registered on GitHub exactly.
	GitHubClientID     string `env:"GITHUB_CLIENT_ID,required,notEmpty"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET,required,notEmpty"`
	GitHubRedirectURI  string `env:"GITHUB_REDIRECT_URI,required,notEmpty"`

	// DatabaseURL selects the token store: a postgres:// or postgresql://
	// DSN uses the pgx store, anything else is treated as a SQLite file path.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// EncryptionKey protects tokens at rest. Must be exactly 32 bytes
	// (AES-256); generate with: openssl rand -hex 16
	EncryptionKey string `env:"ENCRYPTION_KEY,required,notEmpty"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.EncryptionKey) != crypto.KeyLength {
		return fmt.Errorf("config: ENCRYPTION_KEY must be exactly %d bytes, got %d",
			crypto.KeyLength, len(c.EncryptionKey))
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	return nil
}
