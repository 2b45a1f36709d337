package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MockResponse is one queued reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays queued responses in order and records every
// request. With an empty queue it calls Fallback, or fails as unavailable
// when there is none.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	Fallback func(Request) (json.RawMessage, error)
}

// NewMockProvider queues responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider answers every structured request with placeholder
// text shaped to the request schema. It backs MBTI_LLM_PROVIDER=mock so the
// insight cards work without an API key.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{Fallback: stubFromSchema}
}

func (m *MockProvider) Name() string    { return "mock" }
func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var next *MockResponse
	if len(m.responses) > 0 {
		next = &m.responses[0]
		m.responses = m.responses[1:]
	}
	fallback := m.Fallback
	m.mu.Unlock()

	var (
		content json.RawMessage
		usage   Usage
	)
	switch {
	case next != nil:
		if next.Err != nil {
			return nil, next.Err
		}
		content, usage = next.Content, next.Usage
	case fallback != nil:
		var err error
		if content, err = fallback(req); err != nil {
			return nil, err
		}
	default:
		return nil, &ErrProviderUnavailable{}
	}

	return &Response{Content: content, Usage: usage, Model: "mock", StopReason: StopEnd}, nil
}

// AddResponse queues one more reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount is the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// stubFromSchema fills every required string property with a line that
// quotes the prompt. Schemaless requests get the line as plain text.
func stubFromSchema(req Request) (json.RawMessage, error) {
	prompt := strings.Join(strings.Fields(userPrompt(req)), " ")
	if r := []rune(prompt); len(r) > 80 {
		prompt = string(r[:80]) + "..."
	}
	line := fmt.Sprintf("Offline preview. Configure a model provider for real commentary on: %s", prompt)

	if req.Schema == nil {
		return json.Marshal(line)
	}
	out := map[string]any{}
	props, _ := req.Schema.Definition["properties"].(map[string]any)
	for _, name := range stringList(req.Schema.Definition["required"]) {
		def, _ := props[name].(map[string]any)
		if t, _ := def["type"].(string); t == "string" || t == "" {
			out[name] = line
		}
	}
	return json.Marshal(out)
}
