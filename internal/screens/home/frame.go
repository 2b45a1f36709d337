package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/components"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

const titleFull = ` ███╗   ███╗██████╗ ████████╗██╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║
 ██╔████╔██║██████╔╝   ██║   ██║
 ██║╚██╔╝██║██╔══██╗   ██║   ██║
 ██║ ╚═╝ ██║██████╔╝   ██║   ██║
 ╚═╝     ╚═╝╚═════╝    ╚═╝   ╚═╝`

const titleCompact = "M · B · T · I   M I R R O R"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderLatest shows the newest saved result, or a nudge to take the quiz.
func renderLatest(rec *results.Record, loaded bool, cw int) string {
	var text string
	switch {
	case !loaded:
		text = theme.Hint.Render("Loading your last result...")
	case rec == nil:
		text = theme.Body.Render("You haven't taken the quiz yet.")
	default:
		code := lipgloss.NewStyle().
			Foreground(theme.TypeColor(string(rec.TypeCode))).
			Bold(true).
			Render(string(rec.TypeCode))
		text = fmt.Sprintf("%s %s  %s",
			theme.Body.Render("Last result:"),
			code,
			theme.Hint.Render(rec.Profile.Nickname+" · "+rec.CreatedAt.Local().Format("Jan 02, 2006")))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func renderMenu(labels []string, selected int, disabled map[int]bool, cw int, compact bool) string {
	var buttons []string
	for i, label := range labels {
		switch {
		case disabled[i]:
			buttons = append(buttons, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(label))
		case compact && i == selected:
			buttons = append(buttons, theme.Selected.Render("▸ "+label))
		case compact:
			buttons = append(buttons, theme.Unselected.Render("  "+label))
		default:
			buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderInsightBanner notes that exemplar insights are disabled.
func renderInsightBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ AI insights are off. Set an LLM API key to enable them (see mbti-mirror --help)")
}

func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available. Run mbti-mirror update", latestVersion))
}

func renderMirrorFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
