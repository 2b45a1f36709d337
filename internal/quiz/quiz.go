// Package quiz holds caller-owned traversal state for answering a bank one
// question at a time.
package quiz

import (
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
)

// Session tracks the current position and the answers given so far.
// It is not safe for concurrent use; each front end owns its sessions.
type Session struct {
	bank    *personality.Bank
	index   int
	answers personality.AnswerSet
}

// New starts a session at the first question.
func New(bank *personality.Bank) *Session {
	return &Session{bank: bank, answers: personality.AnswerSet{}}
}

// Restore resumes a session from previously given answers, positioned at
// the first unanswered question (or the last question when all are answered).
func Restore(bank *personality.Bank, answers personality.AnswerSet) *Session {
	s := &Session{bank: bank, answers: answers.Clone()}
	if missing := answers.Missing(bank); len(missing) > 0 {
		s.index, _ = bank.IndexOf(missing[0])
	} else {
		s.index = bank.Len() - 1
	}
	return s
}

// Bank returns the question bank.
func (s *Session) Bank() *personality.Bank {
	return s.bank
}

// Current returns the question at the current position.
func (s *Session) Current() personality.Question {
	return s.bank.At(s.index)
}

// Index returns the zero-based current position.
func (s *Session) Index() int {
	return s.index
}

// Len returns the number of questions.
func (s *Session) Len() int {
	return s.bank.Len()
}

// IsFirst reports whether the current question is the first.
func (s *Session) IsFirst() bool {
	return s.index == 0
}

// IsLast reports whether the current question is the last.
func (s *Session) IsLast() bool {
	return s.index == s.bank.Len()-1
}

// Answer records c for the current question and moves to the next one
// unless this is the last question. It returns false for an invalid choice.
func (s *Session) Answer(c personality.Choice) bool {
	if !c.Valid() {
		return false
	}
	s.answers[s.Current().ID] = c
	if !s.IsLast() {
		s.index++
	}
	return true
}

// Next moves forward only when the current question has been answered.
func (s *Session) Next() bool {
	if s.IsLast() {
		return false
	}
	if _, ok := s.Selected(); !ok {
		return false
	}
	s.index++
	return true
}

// Prev moves back one question, stopping at the first.
func (s *Session) Prev() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Jump moves to position i if it is in range.
func (s *Session) Jump(i int) bool {
	if i < 0 || i >= s.bank.Len() {
		return false
	}
	s.index = i
	return true
}

// Selected returns the answer recorded for the current question.
func (s *Session) Selected() (personality.Choice, bool) {
	c, ok := s.answers[s.Current().ID]
	return c, ok
}

// Progress returns the position fraction (index+1)/len in (0, 1].
func (s *Session) Progress() float64 {
	return float64(s.index+1) / float64(s.bank.Len())
}

// Answered returns how many questions have an answer.
func (s *Session) Answered() int {
	return s.bank.Len() - len(s.answers.Missing(s.bank))
}

// AllAnswered reports whether the answer set is complete.
func (s *Session) AllAnswered() bool {
	return s.answers.Complete(s.bank)
}

// CanSubmit reports whether the session is on the last question with every
// question answered.
func (s *Session) CanSubmit() bool {
	return s.IsLast() && s.AllAnswered()
}

// Answers returns a copy of the answers given so far.
func (s *Session) Answers() personality.AnswerSet {
	return s.answers.Clone()
}

// Live classifies the partial answer set for a running preview.
func (s *Session) Live() personality.TypeCode {
	return personality.Classify(s.answers, s.bank)
}
