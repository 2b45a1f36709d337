package history

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/logging"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
)

func completeAnswers(c personality.Choice) personality.AnswerSet {
	a := personality.AnswerSet{}
	for _, id := range personality.DefaultBank().IDs() {
		a[id] = c
	}
	return a
}

func newTestHistory(t *testing.T, submits ...personality.Choice) *HistoryScreen {
	t.Helper()
	catalog, err := profiles.Default()
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := results.NewService(results.NewMemoryRepo(), catalog,
		results.WithLogger(logging.Discard()),
		results.WithClock(func() time.Time { clock = clock.Add(time.Hour); return clock }),
	)
	for _, c := range submits {
		if _, err := svc.Submit(t.Context(), "alice", completeAnswers(c)); err != nil {
			t.Fatal(err)
		}
	}
	return New(svc, nil, "alice")
}

func load(s *HistoryScreen) {
	s.Update(s.Init()())
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := newTestHistory(t)
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Error("expected loading message before data arrives")
	}
	load(s)
	if !strings.Contains(s.View(80, 20), "No results yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_NewestFirst(t *testing.T) {
	s := newTestHistory(t, personality.ChoiceA, personality.ChoiceB)
	load(s)

	if len(s.records) != 2 {
		t.Fatalf("records = %d, want 2", len(s.records))
	}
	if s.records[0].TypeCode != "INFP" {
		t.Errorf("first = %s, want the newer INFP", s.records[0].TypeCode)
	}
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	view := s.View(100, 20)
	if strings.Index(view, "INFP") > strings.Index(view, "ESTJ") {
		t.Error("newest result should be listed first")
	}
}

func TestHistoryScreen_OpenSelected(t *testing.T) {
	s := newTestHistory(t, personality.ChoiceA, personality.ChoiceB)
	load(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if !strings.Contains(push.Screen.View(100, 200), "E S T J") {
		t.Error("expected the older ESTJ result to open")
	}
}
