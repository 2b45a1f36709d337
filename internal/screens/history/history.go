package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
	"github.com/Sablekanishka11/mbti-mirror/internal/screen"
	"github.com/Sablekanishka11/mbti-mirror/internal/screens/summary"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/layout"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

type historyLoadedMsg struct {
	Records []*results.Record
	Err     error
}

// HistoryScreen lists the owner's past results, newest first.
type HistoryScreen struct {
	results  *results.Service
	insights *insight.Service
	owner    string
	records  []*results.Record
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for owner.
func New(svc *results.Service, insights *insight.Service, owner string) *HistoryScreen {
	return &HistoryScreen{
		results:  svc,
		insights: insights,
		owner:    owner,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc, owner := s.results, s.owner
	return func() tea.Msg {
		recs, err := svc.History(context.Background(), owner)
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "My Results"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			// The newest result starts selected.
			s.records = msg.Records
			s.selected = 0
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.records) {
				detail := summary.New(s.records[s.selected], s.insights)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading results...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take the quiz to get your type!")
	}

	// Keep the selection inside the visible window.
	rows := max(height-2, 1)
	first := 0
	if s.selected >= rows {
		first = s.selected - rows + 1
	}
	last := min(first+rows, len(s.records))

	var b strings.Builder
	b.WriteString("\n")
	for i := first; i < last; i++ {
		rec := s.records[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		code := lipgloss.NewStyle().Bold(true).Foreground(theme.TypeColor(string(rec.TypeCode))).Render(string(rec.TypeCode))
		line := fmt.Sprintf("%s%s  ", prefix, rec.CreatedAt.Local().Format("Jan 02, 2006 15:04")) + code + "  " + rec.Profile.Nickname

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
