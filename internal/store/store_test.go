package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(t *testing.T, id, owner string, code personality.TypeCode, at time.Time) *results.Record {
	t.Helper()
	catalog, err := profiles.Default()
	require.NoError(t, err)
	p, err := catalog.Lookup(code)
	require.NoError(t, err)

	answers := personality.AnswerSet{}
	for _, qid := range personality.DefaultBank().IDs() {
		answers[qid] = personality.ChoiceA
	}
	rec := results.Assemble(code, p, answers, owner, at)
	rec.ID = id
	return rec
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mbti.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbti.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestResultRepo_AppendListGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, testRecord(t, "a", "alice", "ESTJ", base)))
	require.NoError(t, repo.Append(ctx, testRecord(t, "b", "bob", "INFP", base.Add(time.Minute))))
	require.NoError(t, repo.Append(ctx, testRecord(t, "c", "alice", "INTJ", base.Add(2*time.Minute))))

	recs, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].ID)
	assert.Equal(t, "a", recs[1].ID)
	assert.Equal(t, personality.TypeCode("INTJ"), recs[0].TypeCode)
	assert.Equal(t, "The Architect", recs[0].Profile.Nickname)
	assert.Len(t, recs[0].Answers, 20)
	assert.True(t, recs[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Owner)
	assert.Equal(t, personality.ChoiceA, got.Answers[1])

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, results.ErrNotFound)
}

func TestResultRepo_AppendIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	rec := testRecord(t, "dup", "alice", "ENFP", time.Now())
	require.NoError(t, repo.Append(ctx, rec))
	require.NoError(t, repo.Append(ctx, rec))

	recs, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestResultRepo_WithService(t *testing.T) {
	s := openTestStore(t)
	catalog, err := profiles.Default()
	require.NoError(t, err)
	svc := results.NewService(s.ResultRepo(), catalog)

	answers := personality.AnswerSet{}
	for _, id := range personality.DefaultBank().IDs() {
		answers[id] = personality.ChoiceB
	}
	rec, err := svc.Submit(context.Background(), "carol", answers)
	require.NoError(t, err)

	history, err := svc.History(context.Background(), "carol")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
	assert.Equal(t, personality.TypeCode("INFP"), history[0].TypeCode)
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"exemplar-insight", "exemplar-insight", "other"} {
		var errMsg string
		if i == 2 {
			errMsg = "boom"
		}
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      purpose,
			InputTokens:  10 * (i + 1),
			OutputTokens: 5,
			LatencyMs:    100,
			Success:      i != 2,
			ErrorMessage: errMsg,
			RequestBody:  "req",
			ResponseBody: "resp",
		})
		require.NoError(t, err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "other", events[0].Purpose, "newest first")
	assert.False(t, events[0].Success)
	assert.Equal(t, "boom", events[0].ErrorMessage)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: events[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, events[0].ID, after[0].ID)

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "exemplar-insight"})
	require.NoError(t, err)
	assert.Len(t, byPurpose, 2)

	e, err := repo.GetLLMEvent(ctx, events[2].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "req", e.RequestBody)
	assert.Equal(t, "resp", e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	add := func(purpose, model string, in, out int, ms int64) {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "p", Model: model, Purpose: purpose,
			InputTokens: in, OutputTokens: out, LatencyMs: ms, Success: true,
		}))
	}
	add("exemplar-insight", "m1", 100, 50, 200)
	add("exemplar-insight", "m2", 300, 10, 400)
	add("summary", "m1", 1, 1, 10)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMPurposeUsage{
		Purpose: "exemplar-insight", Calls: 2, InputTokens: 400, OutputTokens: 60, AvgLatencyMs: 300,
	}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, LLMModelUsage{Model: "m1", Calls: 2, InputTokens: 101, OutputTokens: 51}, byModel[0])
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ResultRepo().Append(ctx, testRecord(t, "r1", "alice", "ISTP", time.Now())))
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m"}))

	var resultSeq int64
	require.NoError(t, s.DB().QueryRow("SELECT sequence FROM results WHERE id = 'r1'").Scan(&resultSeq))
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Greater(t, events[0].Sequence, resultSeq)
}

func TestDefaultDBPath_Env(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "x.db")
	t.Setenv("MBTI_DB", path)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.DirExists(t, filepath.Dir(path))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MBTI_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mbti-mirror", "mbti-mirror.db"), got)
}

func TestUpSection(t *testing.T) {
	got := upSection("-- +migrate Up\nCREATE x;\n-- +migrate Down\nDROP x;")
	assert.Equal(t, "\nCREATE x;\n", got)
	assert.Equal(t, "SELECT 1", upSection("SELECT 1"))
}
