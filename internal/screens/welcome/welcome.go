// Package welcome is the splash screen. When no user name is configured
// it also asks for one before moving on.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/router"
	"github.com/Sablekanishka11/mbti-mirror/internal/screen"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/components"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const nameLimit = 32

const mirrorArt = `   ╭─────────╮
   │ ╲       │
   │   ╲ ◉ ◉ │
   │     ╲ ▽ │
   │       ╲ │
   ╰────┬────╯
      ──┴──`

var glintFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen plays the splash animation and then hands off to the
// screen built by next.
type WelcomeScreen struct {
	next         func(user string) screen.Screen
	user         string
	elapsed      time.Duration
	tickCount    int
	askingName   bool
	name         components.TextInput
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.EscapeHandler = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. An empty user triggers the name prompt.
func New(user string, next func(user string) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next: next,
		user: strings.TrimSpace(user),
		name: components.NewTextInput("Your name", nameLimit),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

// HandlesEscape keeps Esc from popping the root screen.
func (w *WelcomeScreen) HandlesEscape() bool {
	return true
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if w.askingName {
			return w, w.updateName(msg)
		}
		// Any key skips the rest of the animation.
		w.elapsed = totalDur
		if w.user == "" {
			w.askingName = true
			return w, w.name.Init()
		}
		return w, w.transition(w.user)
	}

	if w.askingName {
		var cmd tea.Cmd
		w.name, cmd = w.name.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) updateName(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "enter" {
		name := w.name.Value()
		if name == "" {
			w.name.SetError("Please enter a name")
			return nil
		}
		return w.transition(name)
	}
	var cmd tea.Cmd
	w.name, cmd = w.name.Update(msg)
	return cmd
}

func (w *WelcomeScreen) transition(user string) tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	w.user = user
	home := w.next(user)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mirrorArt)

	if w.elapsed >= phase1End {
		glint := glintFrames[w.tickCount%len(glintFrames)]
		a := lipgloss.NewStyle().Foreground(theme.Accent).Render(glint)
		b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(glint)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[1] = a + " " + lines[1] + " " + b
		}
		if len(lines) > 4 {
			lines[4] = b + " " + lines[4] + " " + a
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Twenty questions. Sixteen types. One you."))
		sections = append(sections, "")

		if w.askingName {
			sections = append(sections, theme.Body.Render("What should we call you?"))
			sections = append(sections, w.name.View())
			sections = append(sections, theme.Hint.Render("Enter to continue"))
		} else {
			sections = append(sections, theme.Hint.Render("press any key to continue"))
		}
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
