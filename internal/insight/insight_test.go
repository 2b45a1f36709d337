package insight

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sablekanishka11/mbti-mirror/internal/llm"
)

func testRequest() Request {
	return Request{TypeCode: "INTJ", Name: "Isaac Newton", Profession: "Physicist"}
}

func insightResponse(text string) llm.MockResponse {
	b, _ := json.Marshal(map[string]string{"insight": text})
	return llm.MockResponse{Content: b}
}

func TestGenerator_BuildsRequest(t *testing.T) {
	mock := llm.NewMockProvider(insightResponse("  Newton built systems.  "))
	g := NewGenerator(mock, DefaultConfig())

	text, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Newton built systems.", text)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, InsightSchema, call.Schema)
	assert.Equal(t, systemPrompt, call.System)
	require.Len(t, call.Messages, 1)
	assert.Contains(t, call.Messages[0].Content, "Type: INTJ")
	assert.Contains(t, call.Messages[0].Content, "Person: Isaac Newton")
	assert.Contains(t, call.Messages[0].Content, "Profession: Physicist")
}

func TestGenerator_EmptyInsight(t *testing.T) {
	g := NewGenerator(llm.NewMockProvider(insightResponse("   ")), DefaultConfig())
	_, err := g.Generate(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestGenerator_BadJSON(t *testing.T) {
	g := NewGenerator(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)}), DefaultConfig())
	_, err := g.Generate(context.Background(), testRequest())
	assert.Error(t, err)
}

func TestService_Unavailable(t *testing.T) {
	s, err := NewService(nil, Options{})
	require.NoError(t, err)
	assert.False(t, s.Available())

	_, err = s.Explain(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestService_CachesSuccess(t *testing.T) {
	mock := llm.NewMockProvider(insightResponse("first"))
	s, err := NewService(mock, Options{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		text, err := s.Explain(context.Background(), testRequest())
		require.NoError(t, err)
		assert.Equal(t, "first", text)
	}
	assert.Equal(t, 1, mock.CallCount())

	cached, ok := s.Cached(testRequest())
	assert.True(t, ok)
	assert.Equal(t, "first", cached)
}

func TestService_DoesNotCacheFailure(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("boom")},
		insightResponse("second try"),
	)
	s, err := NewService(mock, Options{})
	require.NoError(t, err)

	_, err = s.Explain(context.Background(), testRequest())
	require.Error(t, err)

	text, err := s.Explain(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "second try", text)
	assert.Equal(t, 2, mock.CallCount())
}

func TestService_KeyIgnoresCaseAndSpace(t *testing.T) {
	mock := llm.NewMockProvider(insightResponse("x"))
	s, err := NewService(mock, Options{})
	require.NoError(t, err)

	_, err = s.Explain(context.Background(), testRequest())
	require.NoError(t, err)
	_, err = s.Explain(context.Background(), Request{TypeCode: "INTJ", Name: " isaac newton", Profession: "PHYSICIST"})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestService_RejectsInvalidRequest(t *testing.T) {
	s, err := NewService(llm.NewMockProvider(), Options{})
	require.NoError(t, err)

	_, err = s.Explain(context.Background(), Request{TypeCode: "XXXX", Name: "A"})
	assert.Error(t, err)
	_, err = s.Explain(context.Background(), Request{TypeCode: "INTJ"})
	assert.Error(t, err)
}

func TestService_ConcurrentCallsShareResult(t *testing.T) {
	mock := llm.NewMockProvider(insightResponse("shared"))
	for i := 0; i < 7; i++ {
		mock.AddResponse(insightResponse("shared"))
	}
	s, err := NewService(mock, Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := s.Explain(context.Background(), testRequest())
			assert.NoError(t, err)
			assert.Equal(t, "shared", text)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, mock.CallCount(), 8)
	assert.GreaterOrEqual(t, mock.CallCount(), 1)
}

// heldProvider answers once release is closed, or fails with ctx.Err().
type heldProvider struct {
	started chan struct{}
	release chan struct{}
}

func (p *heldProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	close(p.started)
	select {
	case <-p.release:
		return &llm.Response{Content: json.RawMessage(`{"insight":"still here"}`)}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *heldProvider) ModelID() string { return "held" }
func (p *heldProvider) Name() string    { return "held" }

func TestService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	p := &heldProvider{started: make(chan struct{}), release: make(chan struct{})}
	s, err := NewService(p, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error)
	go func() {
		_, err := s.Explain(ctx, testRequest())
		firstErr <- err
	}()
	<-p.started

	second := make(chan string)
	go func() {
		text, err := s.Explain(context.Background(), testRequest())
		assert.NoError(t, err)
		second <- text
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(p.release)
	assert.Equal(t, "still here", <-second)

	cached, ok := s.Cached(testRequest())
	assert.True(t, ok)
	assert.Equal(t, "still here", cached)
}

func TestCard_Lifecycle(t *testing.T) {
	c := NewCard(testRequest())
	assert.Equal(t, StateIdle, c.State)
	assert.False(t, c.Expanded)

	assert.True(t, c.Toggle(), "first click starts a fetch")
	assert.Equal(t, StateLoading, c.State)
	assert.True(t, c.Expanded)

	assert.False(t, c.Toggle(), "clicks while loading are ignored")
	assert.Equal(t, StateLoading, c.State)

	c.Resolve("text", nil)
	assert.Equal(t, StateLoaded, c.State)
	assert.Equal(t, "text", c.Text)
	assert.True(t, c.Expanded)

	assert.False(t, c.Toggle(), "loaded cards toggle without refetching")
	assert.False(t, c.Expanded)
	assert.False(t, c.Toggle())
	assert.True(t, c.Expanded)
}

func TestCard_FailureCollapsesAndAllowsRetry(t *testing.T) {
	c := NewCard(testRequest())
	require.True(t, c.Toggle())

	c.Resolve("", errors.New("nope"))
	assert.Equal(t, StateFailed, c.State)
	assert.False(t, c.Expanded)
	assert.Error(t, c.Err)

	assert.True(t, c.Toggle(), "a failed card fetches again")
	assert.Equal(t, StateLoading, c.State)
	assert.NoError(t, c.Err)
}

func TestCard_ResolveIgnoredWhenNotLoading(t *testing.T) {
	c := NewCard(testRequest())
	c.Resolve("late", nil)
	assert.Equal(t, StateIdle, c.State)
	assert.Empty(t, c.Text)
}
