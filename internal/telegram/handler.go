// Package telegram runs the quiz as a Telegram bot with inline keyboards.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/quiz"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

// Callback uniques.
const (
	uniqueAnswer  = "answer"
	uniqueBack    = "back"
	uniqueRetry   = "retry"
	uniqueInsight = "insight"
	uniqueRestart = "restart"
)

// historyLimit caps how many past results /history lists.
const historyLimit = 10

// Reply is one outgoing message. Edit replaces the message that carried
// the triggering button instead of sending a new one.
type Reply struct {
	Text   string
	Markup *tele.ReplyMarkup
	Edit   bool
}

// Handler holds per-chat quiz state and turns bot events into replies.
// It never talks to Telegram itself.
type Handler struct {
	results  *results.Service
	catalog  *profiles.Catalog
	insights *insight.Service
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*quiz.Session
	pending  map[int64]*results.Record
	// saving holds chats whose submission is in flight. Their session is
	// already gone so a repeated tap cannot submit twice.
	saving map[int64]struct{}
}

// NewHandler creates a Handler. insights may be nil.
func NewHandler(svc *results.Service, catalog *profiles.Catalog, insights *insight.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		results:  svc,
		catalog:  catalog,
		insights: insights,
		logger:   logger.With("component", "telegram"),
		sessions: make(map[int64]*quiz.Session),
		pending:  make(map[int64]*results.Record),
		saving:   make(map[int64]struct{}),
	}
}

// Owner maps a Telegram user id to a result owner.
func Owner(userID int64) string {
	return fmt.Sprintf("tg:%d", userID)
}

// Welcome answers /start.
func (h *Handler) Welcome() Reply {
	return Reply{Text: "Hi! I can work out your four-letter personality type from " +
		strconv.Itoa(h.results.Bank().Len()) + " quick either/or questions.\n\n" +
		"/quiz starts the quiz\n/history shows your past results"}
}

// StartQuiz begins a fresh session for the chat, discarding any in progress.
func (h *Handler) StartQuiz(chatID int64) Reply {
	s := quiz.New(h.results.Bank())

	h.mu.Lock()
	h.sessions[chatID] = s
	delete(h.pending, chatID)
	h.mu.Unlock()

	return questionReply(s, false)
}

// Answer records a choice. questionID must match the current question, so
// taps on an old keyboard are ignored.
func (h *Handler) Answer(ctx context.Context, chatID int64, owner string, questionID int, c personality.Choice) Reply {
	h.mu.Lock()
	s, ok := h.sessions[chatID]
	if !ok {
		_, busy := h.saving[chatID]
		h.mu.Unlock()
		if busy {
			return savingReply()
		}
		return noQuizReply()
	}
	if s.Current().ID != questionID {
		h.mu.Unlock()
		return questionReply(s, true)
	}
	wasLast := s.IsLast()
	s.Answer(c)
	if !wasLast {
		h.mu.Unlock()
		return questionReply(s, true)
	}
	if missing := s.Answers().Missing(s.Bank()); len(missing) > 0 {
		i, _ := s.Bank().IndexOf(missing[0])
		s.Jump(i)
		h.mu.Unlock()
		return questionReply(s, true)
	}
	answers := s.Answers()
	delete(h.sessions, chatID)
	h.saving[chatID] = struct{}{}
	h.mu.Unlock()

	return h.submit(ctx, chatID, owner, answers)
}

func (h *Handler) submit(ctx context.Context, chatID int64, owner string, answers personality.AnswerSet) Reply {
	defer func() {
		h.mu.Lock()
		delete(h.saving, chatID)
		h.mu.Unlock()
	}()
	rec, err := h.results.Submit(ctx, owner, answers)
	if err != nil {
		return h.submitFailed(chatID, err)
	}
	h.finish(chatID)
	return h.resultReply(rec)
}

func (h *Handler) submitFailed(chatID int64, err error) Reply {
	var persist *results.PersistError
	if errors.As(err, &persist) {
		h.mu.Lock()
		h.pending[chatID] = persist.Record
		h.mu.Unlock()

		m := &tele.ReplyMarkup{}
		m.Inline(m.Row(m.Data("Try again", uniqueRetry)))
		return Reply{Text: "I worked out your type but could not save it. Try again?", Markup: m}
	}

	h.logger.Error("submit failed", "chat_id", chatID, "error", err)
	h.finish(chatID)
	if errors.Is(err, results.ErrProfileNotFound) {
		return Reply{Text: "Sorry, I could not calculate your result. Please try /quiz again later."}
	}
	return Reply{Text: "Something went wrong. Please try /quiz again."}
}

// Retry re-saves a result whose first save failed. The record leaves
// pending while the save runs and returns there only if it fails again.
func (h *Handler) Retry(ctx context.Context, chatID int64) Reply {
	h.mu.Lock()
	rec, ok := h.pending[chatID]
	delete(h.pending, chatID)
	_, busy := h.saving[chatID]
	if ok {
		h.saving[chatID] = struct{}{}
	}
	h.mu.Unlock()
	if !ok {
		if busy {
			return savingReply()
		}
		return noQuizReply()
	}
	defer func() {
		h.mu.Lock()
		delete(h.saving, chatID)
		h.mu.Unlock()
	}()

	saved, err := h.results.Retry(ctx, rec)
	if err != nil {
		return h.submitFailed(chatID, err)
	}
	h.finish(chatID)
	return h.resultReply(saved)
}

// finish drops a saved or abandoned result. The quiz session is already
// gone; a quiz started meanwhile is left alone.
func (h *Handler) finish(chatID int64) {
	h.mu.Lock()
	delete(h.pending, chatID)
	h.mu.Unlock()
}

// Back returns to the previous question.
func (h *Handler) Back(chatID int64) Reply {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[chatID]
	if !ok {
		return noQuizReply()
	}
	s.Prev()
	return questionReply(s, true)
}

// History lists the owner's recent results, newest first.
func (h *Handler) History(ctx context.Context, owner string) Reply {
	recs, err := h.results.History(ctx, owner)
	if err != nil {
		h.logger.Error("history failed", "owner", owner, "error", err)
		return Reply{Text: "Could not load your results right now."}
	}
	if len(recs) == 0 {
		return Reply{Text: "No results yet. Send /quiz to take the quiz."}
	}

	var b strings.Builder
	b.WriteString("Your results:\n")
	for i, rec := range recs {
		if i == historyLimit {
			fmt.Fprintf(&b, "...and %d more\n", len(recs)-historyLimit)
			break
		}
		fmt.Fprintf(&b, "%s  %s (%s)\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.TypeCode, rec.Profile.Nickname)
	}
	return Reply{Text: b.String()}
}

// Insight explains why an exemplar of code fits the type.
func (h *Handler) Insight(ctx context.Context, code personality.TypeCode, exemplar int) Reply {
	p, err := h.catalog.Lookup(code)
	if err != nil || exemplar < 0 || exemplar >= len(p.Exemplars) {
		return Reply{Text: "That person is no longer listed."}
	}
	ex := p.Exemplars[exemplar]
	if h.insights == nil || !h.insights.Available() {
		return Reply{Text: ex.Name + ": " + ex.Explanation}
	}

	text, err := h.insights.Explain(ctx, insight.Request{TypeCode: code, Name: ex.Name, Profession: ex.Profession})
	if err != nil {
		return Reply{Text: "Could not generate an insight for " + ex.Name + ". Tap the button to try again."}
	}
	return Reply{Text: ex.Name + " (" + ex.Profession + ")\n\n" + text}
}

func savingReply() Reply {
	return Reply{Text: "Saving your result, one moment..."}
}

func noQuizReply() Reply {
	return Reply{Text: "No quiz in progress. Send /quiz to start."}
}

func questionReply(s *quiz.Session, edit bool) Reply {
	q := s.Current()

	m := &tele.ReplyMarkup{}
	rows := []tele.Row{
		m.Row(m.Data("A: "+q.A.Text, uniqueAnswer, strconv.Itoa(q.ID), string(personality.ChoiceA))),
		m.Row(m.Data("B: "+q.B.Text, uniqueAnswer, strconv.Itoa(q.ID), string(personality.ChoiceB))),
	}
	if !s.IsFirst() {
		rows = append(rows, m.Row(m.Data("« Back", uniqueBack)))
	}
	m.Inline(rows...)

	text := fmt.Sprintf("Question %d of %d (%d%%)\n\n%s", s.Index()+1, s.Len(), int(s.Progress()*100), q.Text)
	if c, ok := s.Selected(); ok {
		text += "\n\nYour answer: " + string(c)
	}
	return Reply{Text: text, Markup: m, Edit: edit}
}

func (h *Handler) resultReply(rec *results.Record) Reply {
	p := rec.Profile

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s\n\n%s\n\n", rec.TypeCode, p.Nickname, p.Overview)
	b.WriteString("Strengths:\n")
	for _, s := range p.Strengths {
		b.WriteString("• " + s + "\n")
	}
	b.WriteString("\nWeaknesses:\n")
	for _, s := range p.Weaknesses {
		b.WriteString("• " + s + "\n")
	}
	fmt.Fprintf(&b, "\nCommunication: %s\n\nCareer: %s\n\nRelationships: %s\n",
		p.CommunicationStyle, p.CareerInclination, p.RelationshipTraits)
	if len(p.Exemplars) > 0 {
		b.WriteString("\nFamous examples:\n")
		for _, ex := range p.Exemplars {
			fmt.Fprintf(&b, "• %s, %s\n", ex.Name, ex.Profession)
		}
	}

	m := &tele.ReplyMarkup{}
	var rows []tele.Row
	for i, ex := range p.Exemplars {
		rows = append(rows, m.Row(m.Data("Why "+ex.Name+"?", uniqueInsight, string(rec.TypeCode), strconv.Itoa(i))))
	}
	rows = append(rows, m.Row(m.Data("Take it again", uniqueRestart)))
	m.Inline(rows...)

	return Reply{Text: b.String(), Markup: m}
}

// parseAnswerData reads the "<question id>|<choice>" callback payload.
func parseAnswerData(data string) (int, personality.Choice, error) {
	idStr, choiceStr, ok := strings.Cut(data, "|")
	if !ok {
		return 0, "", fmt.Errorf("answer payload %q: expected id|choice", data)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, "", fmt.Errorf("answer payload %q: %w", data, err)
	}
	c, err := personality.ParseChoice(choiceStr)
	if err != nil {
		return 0, "", fmt.Errorf("answer payload %q: %w", data, err)
	}
	return id, c, nil
}

// parseInsightData reads the "<type code>|<exemplar index>" callback payload.
func parseInsightData(data string) (personality.TypeCode, int, error) {
	codeStr, idxStr, ok := strings.Cut(data, "|")
	if !ok {
		return "", 0, fmt.Errorf("insight payload %q: expected code|index", data)
	}
	code, err := personality.ParseTypeCode(codeStr)
	if err != nil {
		return "", 0, err
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return "", 0, fmt.Errorf("insight payload %q: %w", data, err)
	}
	return code, idx, nil
}
