package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"habitLogAPI/utils"
)

type Config struct {
	// Server
	Port        string   `env:"PORT" envDefault:"3333"`
	Environment string   `env:"ENVIRONMENT" envDefault:"development"` // development, production
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // json, text

	// Storage
	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"` // memory, file, postgres, sqlite
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./data/habitlog.db"`

	// Redis, optional. When set, per-user locks are shared across instances.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"habitlog"`

	// Calendar day boundaries
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`

	// Auth
	AuthMode       string `env:"AUTH_MODE" envDefault:"clerk"` // clerk, header
	ClerkSecretKey string `env:"CLERK_SECRET_KEY"`

	// Metrics
	MetricsUser string `env:"METRICS_USER"`
	MetricsPass string `env:"METRICS_PASS"`

	// Rate limiting, per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Reminder worker; 0 disables it.
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" envDefault:"1h"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case "memory", "file", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not supported", c.StoreDriver))
	}

	switch c.AuthMode {
	case "clerk":
		if c.ClerkSecretKey == "" {
			errs = append(errs, errors.New("CLERK_SECRET_KEY is required when AUTH_MODE=clerk"))
		}
	case "header":
		if c.IsProduction() {
			log.Printf("WARN: AUTH_MODE=header trusts the X-User-ID header; use it only behind a trusted proxy")
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE %q is not supported", c.AuthMode))
	}

	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	if c.MetricsUser == "" || c.MetricsPass == "" {
		log.Printf("WARN: METRICS_USER or METRICS_PASS is not set, /metrics will reject every request")
	}

	return errors.Join(errs...)
}

func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) UsesRedis() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
