// Package home is the main menu shown after the splash screen.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
	"github.com/Sablekanishka11/mbti-mirror/internal/screen"
	"github.com/Sablekanishka11/mbti-mirror/internal/screens/history"
	quizscreen "github.com/Sablekanishka11/mbti-mirror/internal/screens/quiz"
	"github.com/Sablekanishka11/mbti-mirror/internal/screens/summary"
	typesscreen "github.com/Sablekanishka11/mbti-mirror/internal/screens/types"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/components"
)

// Menu positions.
const (
	itemQuiz = iota
	itemLast
	itemHistory
	itemTypes
	itemExit
)

// Deps is what the home screen and the screens it opens need.
type Deps struct {
	Results  *results.Service
	Catalog  *profiles.Catalog
	Insights *insight.Service // nil when no LLM provider is configured
	Owner    string

	// LatestVersion, when set, shows an update note.
	LatestVersion string
}

type latestLoadedMsg struct {
	record *results.Record
	err    error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	latest *results.Record
	loaded bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		itemQuiz: {Label: "TAKE THE QUIZ", Action: h.push(func() screen.Screen {
			return quizscreen.New(deps.Results, deps.Insights, deps.Owner)
		})},
		itemLast: {Label: "LAST RESULT", Disabled: true, Action: h.push(func() screen.Screen {
			return summary.New(h.latest, deps.Insights)
		})},
		itemHistory: {Label: "MY RESULTS", Action: h.push(func() screen.Screen {
			return history.New(deps.Results, deps.Insights, deps.Owner)
		})},
		itemTypes: {Label: "BROWSE TYPES", Action: h.push(func() screen.Screen {
			return typesscreen.New(deps.Catalog, deps.Insights)
		})},
		itemExit: {Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// Init loads the newest result. It runs again whenever the app returns
// to the root, so the card stays current after a quiz.
func (h *HomeScreen) Init() tea.Cmd {
	svc, owner := h.deps.Results, h.deps.Owner
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := svc.History(context.Background(), owner)
		if err != nil || len(recs) == 0 {
			return latestLoadedMsg{err: err}
		}
		return latestLoadedMsg{record: recs[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(latestLoadedMsg); ok {
		h.loaded = true
		h.latest = msg.record
		h.menu.Items[itemLast].Disabled = h.latest == nil
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	termHeight := height + 8
	compact := termHeight < 34 || width < 90
	cw := components.ContentWidth(width)

	code := ""
	if h.latest != nil {
		code = string(h.latest.TypeCode)
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMirrorBox(code, cw))
	}
	sections = append(sections, renderLatest(h.latest, h.loaded, cw))

	disabled := map[int]bool{}
	for i, item := range h.menu.Items {
		disabled[i] = item.Disabled
	}
	sections = append(sections, renderMenu(h.menu.Labels(), h.menu.Selected, disabled, cw, compact))

	if h.deps.Insights == nil || !h.deps.Insights.Available() {
		sections = append(sections, renderInsightBanner(cw))
	}
	if h.deps.LatestVersion != "" {
		sections = append(sections, renderUpdateNote(h.deps.LatestVersion, cw))
	}

	return renderMirrorFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
