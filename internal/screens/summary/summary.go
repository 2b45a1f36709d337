// Package summary shows a saved result with its profile and expandable
// exemplar insights.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/screen"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/components"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/layout"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

const insightTimeout = 45 * time.Second

type insightMsg struct {
	index int
	text  string
	err   error
}

// SummaryScreen renders one result record.
type SummaryScreen struct {
	record   *results.Record
	title    string
	insights *insight.Service
	cards    []*insight.Card
	cursor   int
	scroll   int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. insights may be nil.
func New(rec *results.Record, insights *insight.Service) *SummaryScreen {
	cards := make([]*insight.Card, len(rec.Profile.Exemplars))
	for i, ex := range rec.Profile.Exemplars {
		cards[i] = insight.NewCard(insight.Request{
			TypeCode:   rec.TypeCode,
			Name:       ex.Name,
			Profession: ex.Profession,
		})
	}
	return &SummaryScreen{record: rec, title: "Your Result", insights: insights, cards: cards}
}

// NewProfile shows a catalog profile that is not tied to a saved result.
func NewProfile(p profiles.Profile, insights *insight.Service) *SummaryScreen {
	s := New(&results.Record{TypeCode: p.Code, Profile: p}, insights)
	s.title = fmt.Sprintf("%s · %s", p.Code, p.Nickname)
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.title
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose person"},
		{Key: "Enter", Description: "Why this type?"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case insightMsg:
		if msg.index >= 0 && msg.index < len(s.cards) {
			s.cards[msg.index].Resolve(msg.text, msg.err)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.cards)-1 {
				s.cursor++
			}
		case "pgdown", "space":
			s.scroll += 5
		case "pgup":
			s.scroll = max(s.scroll-5, 0)
		case "home", "g":
			s.scroll = 0
		case "enter":
			return s, s.toggle(s.cursor)
		}
	}
	return s, nil
}

// toggle expands or collapses card i, starting a fetch when needed.
func (s *SummaryScreen) toggle(i int) tea.Cmd {
	if i < 0 || i >= len(s.cards) {
		return nil
	}
	card := s.cards[i]
	if !card.Toggle() {
		return nil
	}
	req, svc := card.Request, s.insights
	return func() tea.Msg {
		if svc == nil {
			return insightMsg{index: i, err: insight.ErrUnavailable}
		}
		ctx, cancel := context.WithTimeout(context.Background(), insightTimeout)
		defer cancel()
		text, err := svc.Explain(ctx, req)
		return insightMsg{index: i, text: text, err: err}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	lines, cursorLine := s.render(width)

	if cursorLine >= 0 {
		if cursorLine < s.scroll {
			s.scroll = cursorLine
		}
		if cursorLine >= s.scroll+height {
			s.scroll = cursorLine - height + 1
		}
	}
	s.scroll = max(min(s.scroll, len(lines)-height), 0)

	end := min(s.scroll+height, len(lines))
	return strings.Join(lines[s.scroll:end], "\n")
}

// render lays out the whole result and reports the line the exemplar
// cursor sits on.
func (s *SummaryScreen) render(width int) ([]string, int) {
	rec := s.record
	p := rec.Profile
	cw := components.ContentWidth(width)
	inner := cw - 4
	center := func(block string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
	}

	codeStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.TypeColor(string(rec.TypeCode)))
	sections := []string{
		center(codeStyle.Render(spaced(string(rec.TypeCode)))),
		center(theme.Subtitle.Render(p.Nickname)),
	}
	if !rec.CreatedAt.IsZero() {
		sections = append(sections, center(theme.Hint.Render(rec.CreatedAt.Local().Format("Jan 02, 2006 15:04"))))
	}
	sections = append(sections,
		"",
		center(components.Panel("Overview", layout.Wrap(p.Overview, inner), cw)),
		center(components.Panel("Strengths", bullets(p.Strengths, inner), cw)),
		center(components.Panel("Weaknesses", bullets(p.Weaknesses, inner), cw)),
		center(components.Panel("Communication", layout.Wrap(p.CommunicationStyle, inner), cw)),
		center(components.Panel("Career", layout.Wrap(p.CareerInclination, inner), cw)),
		center(components.Panel("Relationships", layout.Wrap(p.RelationshipTraits, inner), cw)),
		"",
		center(theme.Heading.Render("Famous "+string(rec.TypeCode)+"s")),
	)

	var lines []string
	for _, sec := range sections {
		lines = append(lines, strings.Split(sec, "\n")...)
	}

	cursorLine := -1
	for i, card := range s.cards {
		if i == s.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, strings.Split(center(s.renderCard(i, card, inner)), "\n")...)
	}
	return lines, cursorLine
}

func (s *SummaryScreen) renderCard(i int, card *insight.Card, inner int) string {
	ex := s.record.Profile.Exemplars[i]

	marker := "▸"
	if card.Expanded {
		marker = "▾"
	}
	title := fmt.Sprintf("%s %s, %s", marker, ex.Name, ex.Profession)

	var b strings.Builder
	if i == s.cursor {
		b.WriteString(theme.Selected.Render(title))
	} else {
		b.WriteString(theme.Unselected.Render(title))
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(layout.Wrap(ex.Explanation, inner)))

	switch {
	case card.State == insight.StateLoading:
		b.WriteString("\n\n" + theme.Hint.Render("Thinking..."))
	case card.State == insight.StateLoaded && card.Expanded:
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Render(layout.Wrap(card.Text, inner)))
	case card.State == insight.StateFailed:
		msg := "Could not load an insight. Press Enter to try again."
		if errors.Is(card.Err, insight.ErrUnavailable) {
			msg = "AI insights are off. Set an LLM API key to enable them."
		}
		b.WriteString("\n\n" + theme.Failed.Render(msg))
	}

	style := theme.Card.Width(inner + 4)
	if i == s.cursor {
		style = style.BorderForeground(theme.Primary)
	}
	return style.Render(b.String())
}

func bullets(items []string, width int) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + layout.Wrap(item, width-2)
	}
	return strings.Join(lines, "\n")
}

// spaced renders "INTJ" as "I N T J".
func spaced(code string) string {
	return strings.Join(strings.Split(code, ""), " ")
}
