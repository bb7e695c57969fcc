package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains the process-wide configuration loaded from the
// environment. A .env file, if present, is loaded by main before this
// is parsed.
type Config struct {
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:5000"`
	DatabaseURL string        `env:"DATABASE_URL"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
}

// placeholder secrets shipped in example env files; running with one of
// these is a configuration error, not a weak-but-valid secret.
var placeholderSecrets = map[string]struct{}{
	"changeme":        {},
	"secret":          {},
	"devsecret":       {},
	"your_jwt_secret": {},
}

var (
	ErrMissingSecret      = errors.New("JWT_SECRET is not set")
	ErrPlaceholderSecret  = errors.New("JWT_SECRET is a placeholder value")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
)

// Load parses configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the process must not start with.
func (c *Config) Validate() error {
	secret := strings.TrimSpace(c.JWTSecret)
	if secret == "" {
		return ErrMissingSecret
	}
	if _, ok := placeholderSecrets[strings.ToLower(secret)]; ok {
		return ErrPlaceholderSecret
	}
	// the example env files ship secrets of the form tu_secreto_*; any
	// secret containing that marker is still the placeholder
	if strings.Contains(strings.ToLower(secret), "tu_secreto") {
		return ErrPlaceholderSecret
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return ErrMissingDatabaseURL
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
