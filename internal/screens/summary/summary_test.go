package summary

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/llm"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

func testRecord(t *testing.T) *results.Record {
	t.Helper()
	catalog, err := profiles.Default()
	if err != nil {
		t.Fatal(err)
	}
	p, err := catalog.Lookup("INTJ")
	if err != nil {
		t.Fatal(err)
	}
	rec := results.Assemble("INTJ", p, personality.AnswerSet{}, "alice", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	rec.ID = "r1"
	return rec
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testRecord(t), nil)
	if s.Title() != "Your Result" {
		t.Errorf("Title = %q, want %q", s.Title(), "Your Result")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testRecord(t), nil)
	view := s.View(100, 200)
	for _, want := range []string{"I N T J", "The Architect", "Strengths", "Career", "Elon Musk"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_ViewFitsHeight(t *testing.T) {
	s := New(testRecord(t), nil)
	view := s.View(100, 10)
	if n := strings.Count(view, "\n") + 1; n > 10 {
		t.Errorf("view has %d lines, want at most 10", n)
	}
}

func TestSummaryScreen_CursorMoves(t *testing.T) {
	s := New(testRecord(t), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.cursor)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.cursor != 1 {
		t.Errorf("cursor moved past the last exemplar: %d", s.cursor)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
}

func TestSummaryScreen_InsightUnavailable(t *testing.T) {
	s := New(testRecord(t), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a fetch command on Enter")
	}
	if s.cards[0].State != insight.StateLoading {
		t.Errorf("state = %v, want loading", s.cards[0].State)
	}

	s.Update(cmd())
	if s.cards[0].State != insight.StateFailed {
		t.Errorf("state = %v, want failed", s.cards[0].State)
	}
	if !strings.Contains(s.View(100, 200), "AI insights are off") {
		t.Error("expected the unavailable hint")
	}
}

func TestSummaryScreen_InsightLoadsOnceThenToggles(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"insight":"Builds long-range plans."}`)})
	svc, err := insight.NewService(mock, insight.Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := New(testRecord(t), svc)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())
	if s.cards[0].State != insight.StateLoaded || !s.cards[0].Expanded {
		t.Fatalf("card = %+v, want loaded and expanded", s.cards[0])
	}
	if !strings.Contains(s.View(100, 200), "Builds long-range plans.") {
		t.Error("insight text not shown")
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("a loaded card must not fetch again")
	}
	if s.cards[0].Expanded {
		t.Error("second Enter should collapse the card")
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}

func TestSummaryScreen_InsightFailureAllowsRetry(t *testing.T) {
	s := New(testRecord(t), nil)
	s.cards[1].Toggle()
	s.Update(insightMsg{index: 1, err: errors.New("boom")})
	if s.cards[1].State != insight.StateFailed || s.cards[1].Expanded {
		t.Fatalf("card = %+v, want failed and collapsed", s.cards[1])
	}
	if !s.cards[1].Toggle() {
		t.Error("a failed card should fetch again")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if n := len(New(testRecord(t), nil).KeyHints()); n != 4 {
		t.Errorf("KeyHints length = %d, want 4", n)
	}
}

func TestNewProfile(t *testing.T) {
	catalog, err := profiles.Default()
	if err != nil {
		t.Fatal(err)
	}
	p, err := catalog.Lookup("ESTJ")
	if err != nil {
		t.Fatal(err)
	}
	s := NewProfile(p, nil)
	if s.Title() != "ESTJ · The Executive" {
		t.Errorf("Title = %q", s.Title())
	}
	view := s.View(100, 200)
	if !strings.Contains(view, "E S T J") {
		t.Error("view missing code")
	}
	if strings.Contains(view, "0001") {
		t.Error("a catalog profile should not show a timestamp")
	}
}
