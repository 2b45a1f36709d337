// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/logging"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
	"github.com/Sablekanishka11/mbti-mirror/internal/screen"
	"github.com/Sablekanishka11/mbti-mirror/internal/screens/home"
	"github.com/Sablekanishka11/mbti-mirror/internal/screens/welcome"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/layout"
)

// Options carries the services the screens need.
type Options struct {
	Results  *results.Service
	Catalog  *profiles.Catalog
	Insights *insight.Service // nil disables exemplar insights
	Logger   *slog.Logger

	// Owner is the configured user name. Empty means the welcome screen
	// asks for one.
	Owner string

	// LatestVersion is shown on the home screen when an update exists.
	LatestVersion string
}

// session holds state shared between the model copies Bubble Tea makes.
type session struct {
	owner string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *session
	logger  *slog.Logger
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	sess := &session{owner: opts.Owner}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	toHome := func(user string) screen.Screen {
		sess.owner = user
		logger.Info("tui session started", "owner", user)
		return home.New(home.Deps{
			Results:       opts.Results,
			Catalog:       opts.Catalog,
			Insights:      opts.Insights,
			Owner:         user,
			LatestVersion: opts.LatestVersion,
		})
	}

	return AppModel{
		router:  router.New(welcome.New(opts.Owner, toHome)),
		session: sess,
		logger:  logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.session.owner, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
