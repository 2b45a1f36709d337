package quiz

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/logging"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
)

func newTestScreen(t *testing.T) (*QuizScreen, *results.MemoryRepo) {
	t.Helper()
	catalog, err := profiles.Default()
	if err != nil {
		t.Fatal(err)
	}
	repo := results.NewMemoryRepo()
	svc := results.NewService(repo, catalog, results.WithLogger(logging.Discard()))
	return New(svc, nil, "alice"), repo
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// answerAll presses b (or a) for every question.
func answerAll(s *QuizScreen, k string) {
	for i := 0; i < s.session.Len(); i++ {
		s.Update(key(k))
	}
}

func TestQuizScreen_AnswerAdvances(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(key("b"))
	if s.session.Index() != 1 {
		t.Errorf("index = %d, want 1", s.session.Index())
	}
	if s.cursor != cursorA {
		t.Errorf("cursor = %d on an unanswered question, want A", s.cursor)
	}

	s.Update(key("left"))
	if s.session.Index() != 0 {
		t.Errorf("index = %d after left, want 0", s.session.Index())
	}
	if s.cursor != cursorB {
		t.Errorf("cursor = %d, want B (the recorded answer)", s.cursor)
	}
}

func TestQuizScreen_NextNeedsAnswer(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(key("right"))
	if s.session.Index() != 0 {
		t.Errorf("right moved past an unanswered question")
	}
}

func TestQuizScreen_EnterAnswersCursor(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(key("down"))
	s.Update(key("enter"))
	if got := s.session.Answers()[1]; got != personality.ChoiceB {
		t.Errorf("answer 1 = %q, want B", got)
	}
}

func TestQuizScreen_SubmitOnlyWhenComplete(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(key("down"))
	s.Update(key("down"))
	if s.cursor != cursorB {
		t.Errorf("cursor reached %d before all answered", s.cursor)
	}
	if cmd := s.submit(); cmd != nil {
		t.Error("submit allowed with missing answers")
	}
}

func TestQuizScreen_SubmitFlow(t *testing.T) {
	s, repo := newTestScreen(t)
	answerAll(s, "b")

	if s.cursor != cursorSubmit {
		t.Fatalf("cursor = %d after last answer, want Submit", s.cursor)
	}
	if !strings.Contains(s.View(100, 40), "Submit") {
		t.Error("submit button not shown")
	}

	_, cmd := s.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected navigation after a successful submit")
	}
	nav, ok := cmd().(router.PopToRootMsg)
	if !ok || nav.Then == nil || nav.Then.Title() != "Your Result" {
		t.Errorf("navigation = %#v, want PopToRoot then result", nav)
	}

	recs, _ := repo.ListByOwner(t.Context(), "alice")
	if len(recs) != 1 || recs[0].TypeCode != "INFP" {
		t.Errorf("saved = %v, want one INFP record", recs)
	}
}

func TestQuizScreen_PersistFailureRetry(t *testing.T) {
	s, repo := newTestScreen(t)
	repo.FailAppend = errors.New("disk full")
	answerAll(s, "a")

	_, cmd := s.Update(key("enter"))
	s.Update(cmd())
	if s.pending == nil {
		t.Fatal("expected a pending record after a failed save")
	}
	if !strings.Contains(s.View(100, 40), "ESTJ") {
		t.Error("error message should name the computed type")
	}

	repo.FailAppend = nil
	_, cmd = s.Update(key("r"))
	if cmd == nil {
		t.Fatal("expected retry command")
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected navigation after retry")
	}
	if s.pending != nil {
		t.Error("pending record should clear after a successful retry")
	}
}

func TestQuizScreen_MissingProfile(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(submitDoneMsg{err: results.ErrProfileNotFound})
	if !strings.Contains(s.errMsg, "Could not calculate your MBTI type") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestQuizScreen_EscConfirm(t *testing.T) {
	s, _ := newTestScreen(t)
	if _, cmd := s.Update(key("esc")); cmd == nil {
		t.Error("Esc with no answers should leave immediately")
	}

	s.Update(key("a"))
	if _, cmd := s.Update(key("esc")); cmd != nil || !s.confirmQuit {
		t.Fatal("Esc with answers should ask first")
	}
	s.Update(key("n"))
	if s.confirmQuit {
		t.Error("N should cancel the confirmation")
	}
	s.Update(key("esc"))
	if _, cmd := s.Update(key("y")); cmd == nil {
		t.Error("Y should leave the quiz")
	}
}

func TestQuizScreen_LivePreview(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(key("b"))
	if !strings.Contains(s.View(100, 40), "leaning") {
		t.Error("live preview not shown after the first answer")
	}
}
