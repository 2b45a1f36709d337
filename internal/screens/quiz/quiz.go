// Package quiz is the question-by-question answering screen.
package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	qsession "github.com/Sablekanishka11/mbti-mirror/internal/quiz"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
	"github.com/Sablekanishka11/mbti-mirror/internal/screen"
	"github.com/Sablekanishka11/mbti-mirror/internal/screens/summary"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/layout"
)

// cursor positions below the two options.
const (
	cursorA = iota
	cursorB
	cursorSubmit
)

type submitDoneMsg struct {
	record *results.Record
	err    error
}

// QuizScreen walks the user through the bank and submits the answers.
type QuizScreen struct {
	session  *qsession.Session
	results  *results.Service
	insights *insight.Service
	owner    string

	cursor      int
	submitting  bool
	pending     *results.Record // computed but unsaved, for retry
	errMsg      string
	confirmQuit bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New starts a fresh quiz for owner.
func New(svc *results.Service, insights *insight.Service, owner string) *QuizScreen {
	return &QuizScreen{
		session:  qsession.New(svc.Bank()),
		results:  svc,
		insights: insights,
		owner:    owner,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// HandlesEscape keeps the app from popping the screen mid-quiz.
func (s *QuizScreen) HandlesEscape() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.pending != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry save"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return s.handleSubmitDone(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.session.Answered() == 0 {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.confirmQuit = true
		return s, nil
	}

	if s.submitting {
		return s, nil
	}
	if s.pending != nil {
		if key == "r" || key == "R" {
			return s, s.retry()
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.cursor > cursorA {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.maxCursor() {
			s.cursor++
		}
	case "a", "A":
		return s, s.choose(personality.ChoiceA)
	case "b", "B":
		return s, s.choose(personality.ChoiceB)
	case "enter", "space":
		switch s.cursor {
		case cursorA:
			return s, s.choose(personality.ChoiceA)
		case cursorB:
			return s, s.choose(personality.ChoiceB)
		case cursorSubmit:
			return s, s.submit()
		}
	case "left", "h":
		if s.session.Prev() {
			s.syncCursor()
		}
	case "right", "l":
		if s.session.Next() {
			s.syncCursor()
		}
	}
	return s, nil
}

// choose records c and moves on; on the last question with everything
// answered the cursor lands on Submit.
func (s *QuizScreen) choose(c personality.Choice) tea.Cmd {
	s.errMsg = ""
	wasLast := s.session.IsLast()
	s.session.Answer(c)
	if wasLast && s.session.CanSubmit() {
		s.cursor = cursorSubmit
		return nil
	}
	s.syncCursor()
	return nil
}

// syncCursor points the cursor at the recorded answer, or A.
func (s *QuizScreen) syncCursor() {
	s.cursor = cursorA
	if c, ok := s.session.Selected(); ok && c == personality.ChoiceB {
		s.cursor = cursorB
	}
}

func (s *QuizScreen) maxCursor() int {
	if s.session.CanSubmit() {
		return cursorSubmit
	}
	return cursorB
}

func (s *QuizScreen) submit() tea.Cmd {
	if !s.session.CanSubmit() {
		return nil
	}
	s.submitting = true
	svc, owner, answers := s.results, s.owner, s.session.Answers()
	return func() tea.Msg {
		rec, err := svc.Submit(context.Background(), owner, answers)
		return submitDoneMsg{record: rec, err: err}
	}
}

func (s *QuizScreen) retry() tea.Cmd {
	s.submitting = true
	svc, rec := s.results, s.pending
	return func() tea.Msg {
		saved, err := svc.Retry(context.Background(), rec)
		return submitDoneMsg{record: saved, err: err}
	}
}

func (s *QuizScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.err == nil {
		s.pending = nil
		result := summary.New(msg.record, s.insights)
		return s, func() tea.Msg { return router.PopToRootMsg{Then: result} }
	}

	var persist *results.PersistError
	switch {
	case errors.As(msg.err, &persist):
		s.pending = persist.Record
		s.errMsg = "Your type is " + string(persist.Record.TypeCode) + " but it could not be saved."
	case errors.Is(msg.err, results.ErrProfileNotFound):
		s.errMsg = "Could not calculate your MBTI type. Please try again later."
	default:
		s.errMsg = msg.err.Error()
	}
	return s, nil
}
