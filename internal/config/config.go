// Package config loads process-wide settings from MBTI_* environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by every front end. LLM settings live in
// llm.Config and are parsed separately.
type Config struct {
	DBPath           string `env:"MBTI_DB"`
	DatabaseURL      string `env:"MBTI_DATABASE_URL"`
	User             string `env:"MBTI_USER"`
	LogLevel         string `env:"MBTI_LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"MBTI_LOG_FORMAT" envDefault:"text"`
	HTTPAddr         string `env:"MBTI_HTTP_ADDR" envDefault:":8080"`
	HTTPCORS         bool   `env:"MBTI_HTTP_CORS"`
	TelegramToken    string `env:"MBTI_TELEGRAM_TOKEN"`
	InsightCacheSize int    `env:"MBTI_INSIGHT_CACHE_SIZE" envDefault:"256"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values that cannot be used.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("MBTI_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.InsightCacheSize <= 0 {
		return fmt.Errorf("MBTI_INSIGHT_CACHE_SIZE must be positive, got %d", c.InsightCacheSize)
	}
	return nil
}

// UsePostgres reports whether results should be stored in Postgres.
func (c Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}
