package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	Env           string `envconfig:"APP_ENV" default:"development"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"produtos.db"`
	SessionSecret string `envconfig:"APP_SECRET_KEY" default:"dev-secret-key-change-me"`
}

// Load reads configuration from the environment. DATABASE_URL absent means the
// local sqlite fallback is used.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	return &cfg, nil
}

// UsingPostgres reports whether a server DSN was configured.
func (c *Config) UsingPostgres() bool { return c.DatabaseURL != "" }
