// Package insight produces AI commentary on type exemplars. Commentary is
// presentational; failures never affect stored results.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Sablekanishka11/mbti-mirror/internal/llm"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
)

// Purpose labels LLM events produced by this package.
const Purpose = "exemplar-insight"

// ErrEmpty is returned when the model produced no commentary.
var ErrEmpty = errors.New("empty insight")

// Request identifies the exemplar to comment on.
type Request struct {
	TypeCode   personality.TypeCode
	Name       string
	Profession string
}

// Validate checks the request fields.
func (r Request) Validate() error {
	if err := r.TypeCode.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("exemplar name is required")
	}
	return nil
}

func (r Request) key() string {
	return string(r.TypeCode) + "|" + strings.ToLower(strings.TrimSpace(r.Name)) + "|" +
		strings.ToLower(strings.TrimSpace(r.Profession))
}

// Config controls generation parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 400, Temperature: 0.7}
}

// Generator asks an llm.Provider for commentary.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

type insightOutput struct {
	Insight string `json:"insight"`
}

// Generate returns trimmed commentary for req.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      InsightSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("insight generation: %w", err)
	}

	var out insightOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse insight response: %w", err)
	}

	text := strings.TrimSpace(out.Insight)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}
