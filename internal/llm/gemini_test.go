package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestGeminiProvider_StructuredInsight(t *testing.T) {
	var path string
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"insight":"Curious and inventive."}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     80,
				"candidatesTokenCount": 20,
				"totalTokenCount":      100,
			},
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "ENTP exemplar"}},
		Schema:    insightTestSchema(),
		MaxTokens: 300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 100 {
		t.Errorf("total tokens = %d", resp.Usage.TotalTokens)
	}
	if !strings.Contains(path, "gemini-2.5-flash") {
		t.Errorf("path = %q, want the resolved model", path)
	}
}

func TestGeminiProvider_ServerError(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 500, "message": "internal", "status": "INTERNAL"},
		})
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"insight": map[string]any{"type": "string", "minLength": 1},
			"tone":    map[string]any{"type": "string", "enum": []any{"warm", "dry"}},
			"tags":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"insight"},
	})

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s", s.Type)
	}
	if len(s.Properties) != 3 {
		t.Fatalf("properties = %d, want 3", len(s.Properties))
	}
	if got := s.Properties["insight"].MinLength; got == nil || *got != 1 {
		t.Errorf("minLength = %v", got)
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Errorf("enum = %v", s.Properties["tone"].Enum)
	}
	if s.Properties["tags"].Items.Type != genai.TypeString {
		t.Errorf("items type = %s", s.Properties["tags"].Items.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "insight" {
		t.Errorf("required = %v", s.Required)
	}
}
