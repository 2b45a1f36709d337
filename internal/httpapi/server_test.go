package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/llm"
	"github.com/Sablekanishka11/mbti-mirror/internal/logging"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

type missingProfiles struct{}

func (missingProfiles) Lookup(code personality.TypeCode) (profiles.Profile, error) {
	return profiles.Profile{}, fmt.Errorf("%w: %s", profiles.ErrNotFound, code)
}

type fixture struct {
	server *Server
	repo   *results.MemoryRepo
	mock   *llm.MockProvider
}

func newFixture(t *testing.T, source results.ProfileSource, withInsights bool) *fixture {
	t.Helper()
	catalog, err := profiles.Default()
	require.NoError(t, err)
	if source == nil {
		source = catalog
	}

	repo := results.NewMemoryRepo()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := results.NewService(repo, source,
		results.WithClock(func() time.Time { clock = clock.Add(time.Second); return clock }),
		results.WithLogger(logging.Discard()),
	)

	f := &fixture{repo: repo}
	var provider llm.Provider
	if withInsights {
		f.mock = llm.NewMockProvider()
		provider = f.mock
	}
	insights, err := insight.NewService(provider, insight.Options{Logger: logging.Discard()})
	require.NoError(t, err)

	f.server = New(svc, catalog, insights, Options{
		Logger:   logging.Discard(),
		Registry: prometheus.NewRegistry(),
		Version:  "test",
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set(OwnerHeader, owner)
	}
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func allAnswers(choice string) map[string]any {
	answers := map[string]string{}
	for _, id := range personality.DefaultBank().IDs() {
		answers[fmt.Sprint(id)] = choice
	}
	return map[string]any{"answers": answers}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil, false)
	w := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
}

func TestQuestions(t *testing.T) {
	f := newFixture(t, nil, false)
	w := f.do(t, http.MethodGet, "/api/questions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Questions []personality.Question `json:"questions"`
		PerPair   int                    `json:"per_pair"`
	}](t, w)
	assert.Len(t, body.Questions, 20)
	assert.Equal(t, 5, body.PerPair)
	assert.Equal(t, 1, body.Questions[0].ID)
}

func TestClassify_Partial(t *testing.T) {
	f := newFixture(t, nil, false)
	w := f.do(t, http.MethodPost, "/api/classify", "", map[string]any{
		"answers": map[string]string{"1": "B", "2": "B", "3": "A"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[classifyResponse](t, w)
	assert.Equal(t, personality.TypeCode("ISTJ"), body.TypeCode)
	assert.Equal(t, 3, body.Answered)
	assert.Equal(t, 20, body.Total)
	assert.False(t, body.Complete)
	assert.Len(t, body.Missing, 17)
	assert.Equal(t, 2, body.Tallies["I"])
	assert.Equal(t, 1, body.Tallies["E"])
}

func TestClassify_BadChoice(t *testing.T) {
	f := newFixture(t, nil, false)
	w := f.do(t, http.MethodPost, "/api/classify", "", map[string]any{
		"answers": map[string]string{"1": "C"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmit_SavesAndLists(t *testing.T) {
	f := newFixture(t, nil, false)

	w := f.do(t, http.MethodPost, "/api/results", "alice", allAnswers("B"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[results.Record](t, w)
	assert.Equal(t, personality.TypeCode("INFP"), first.TypeCode)
	assert.Equal(t, "alice", first.Owner)
	assert.NotEmpty(t, first.ID)

	w = f.do(t, http.MethodPost, "/api/results", "alice", allAnswers("A"))
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[results.Record](t, w)

	w = f.do(t, http.MethodGet, "/api/results", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Results []results.Record `json:"results"`
	}](t, w)
	require.Len(t, list.Results, 2)
	assert.Equal(t, second.ID, list.Results[0].ID, "newest first")
	assert.Equal(t, first.ID, list.Results[1].ID)

	w = f.do(t, http.MethodGet, "/api/results", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())
}

func TestSubmit_Errors(t *testing.T) {
	t.Run("missing owner", func(t *testing.T) {
		f := newFixture(t, nil, false)
		w := f.do(t, http.MethodPost, "/api/results", "", allAnswers("A"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		f := newFixture(t, nil, false)
		req := httptest.NewRequest(http.MethodPost, "/api/results", strings.NewReader("{"))
		req.Header.Set(OwnerHeader, "alice")
		w := httptest.NewRecorder()
		f.server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("incomplete", func(t *testing.T) {
		f := newFixture(t, nil, false)
		w := f.do(t, http.MethodPost, "/api/results", "alice", map[string]any{
			"answers": map[string]string{"1": "A"},
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decode[errorResponse](t, w)
		assert.Len(t, body.Missing, 19)
		assert.Equal(t, 2, body.Missing[0])
	})

	t.Run("profile missing", func(t *testing.T) {
		f := newFixture(t, missingProfiles{}, false)
		w := f.do(t, http.MethodPost, "/api/results", "alice", allAnswers("A"))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "could not calculate your result", decode[errorResponse](t, w).Error)
		list, err := f.repo.ListByOwner(t.Context(), "alice")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("persist failure", func(t *testing.T) {
		f := newFixture(t, nil, false)
		f.repo.FailAppend = errors.New("disk full")
		w := f.do(t, http.MethodPost, "/api/results", "alice", allAnswers("A"))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetResult(t *testing.T) {
	f := newFixture(t, nil, false)
	w := f.do(t, http.MethodPost, "/api/results", "alice", allAnswers("A"))
	require.Equal(t, http.StatusCreated, w.Code)
	rec := decode[results.Record](t, w)

	w = f.do(t, http.MethodGet, "/api/results/"+rec.ID, "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[results.Record](t, w)
	assert.Equal(t, personality.TypeCode("ESTJ"), got.TypeCode)
	assert.Equal(t, "ESTJ", string(got.Profile.Code))

	w = f.do(t, http.MethodGet, "/api/results/"+rec.ID, "bob", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "foreign owner")

	w = f.do(t, http.MethodGet, "/api/results/nope", "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTypes(t *testing.T) {
	f := newFixture(t, nil, false)

	w := f.do(t, http.MethodGet, "/api/types", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Types []profiles.Profile `json:"types"`
	}](t, w)
	assert.Len(t, list.Types, 16)

	w = f.do(t, http.MethodGet, "/api/types/intj", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The Architect", decode[profiles.Profile](t, w).Nickname)

	w = f.do(t, http.MethodGet, "/api/types/XYZW", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsight(t *testing.T) {
	body := map[string]string{"type_code": "INTJ", "name": "Isaac Newton", "profession": "Physicist"}

	t.Run("unavailable", func(t *testing.T) {
		f := newFixture(t, nil, false)
		w := f.do(t, http.MethodPost, "/api/insights", "", body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("ok", func(t *testing.T) {
		f := newFixture(t, nil, true)
		f.mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"insight":"Newton reasoned from first principles."}`)})
		w := f.do(t, http.MethodPost, "/api/insights", "", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"insight":"Newton reasoned from first principles."}`, w.Body.String())
	})

	t.Run("generation failure", func(t *testing.T) {
		f := newFixture(t, nil, true)
		w := f.do(t, http.MethodPost, "/api/insights", "", body)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("invalid", func(t *testing.T) {
		f := newFixture(t, nil, true)
		w := f.do(t, http.MethodPost, "/api/insights", "", map[string]string{"type_code": "INTJ"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, f.mock.CallCount())
	})
}

func TestMetrics(t *testing.T) {
	f := newFixture(t, nil, false)
	f.do(t, http.MethodPost, "/api/results", "alice", allAnswers("B"))

	w := f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `mbti_mirror_classifications_total{type_code="INFP"} 1`)
	assert.Contains(t, out, `mbti_mirror_submissions_total{outcome="saved"} 1`)
	assert.Contains(t, out, "mbti_mirror_http_request_duration_seconds")
}
