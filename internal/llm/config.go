package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every variable ConfigFromEnv reads, so
// Anthropic.APIKey comes from MBTI_ANTHROPIC_API_KEY.
const envPrefix = "MBTI_"

// Config selects the text-generation backend and its call policy.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock". The mock serves offline placeholder text.
	Provider string `env:"LLM_PROVIDER"`

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration `env:"LLM_TIMEOUT"`
	Retry   RetryConfig   `envPrefix:"LLM_RETRY_"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
}

type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"`
}

type OpenAIConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"`
	// BaseURL points the client at any OpenAI-compatible endpoint.
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL"`
}

// OpenRouterConfig model names are passed through untouched, e.g.
// "google/gemini-2.0-flash-exp".
type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig drives exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"ATTEMPTS"`
	InitialWait time.Duration `env:"INITIAL_WAIT"`
	MaxWait     time.Duration `env:"MAX_WAIT"`
	Multiplier  float64       `env:"MULTIPLIER"`
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Timeout:    30 * time.Second,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// ConfigFromEnv overlays MBTI_* variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}
	return cfg, nil
}

// backend ties a provider name to its API key field. The order is the
// DiscoverConfig priority.
type backend struct {
	name   string
	keyEnv string
	key    func(*Config) *string
}

var backends = []backend{
	{"gemini", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

func lookupBackend(name string) (backend, bool) {
	for _, b := range backends {
		if b.name == name {
			return b, true
		}
	}
	return backend{}, false
}

// explicitlyConfigured reports whether the provider selector or any
// MBTI_*_API_KEY is set.
func explicitlyConfigured() bool {
	if os.Getenv(envPrefix+"LLM_PROVIDER") != "" {
		return true
	}
	for _, b := range backends {
		if os.Getenv(envPrefix+b.keyEnv) != "" {
			return true
		}
	}
	return false
}

// DiscoverConfig looks for the vendors' own *_API_KEY variables and selects
// the first backend with a key, in the order Gemini, OpenAI, Anthropic,
// OpenRouter.
func DiscoverConfig() (Config, bool) {
	for _, b := range backends {
		if k := os.Getenv(b.keyEnv); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = b.name
			*b.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	b, ok := lookupBackend(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *b.key(&c) == "" {
		return fmt.Errorf("%s%s is required for the %s provider", envPrefix, b.keyEnv, b.name)
	}
	return nil
}
