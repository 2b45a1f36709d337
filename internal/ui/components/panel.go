package components

import (
	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

// ContentWidth returns the uniform inner width for stacked panels so they
// line up, capped at 72 columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Panel wraps content in a rounded card of content width cw, with an
// optional heading on the first line.
func Panel(heading, content string, cw int) string {
	body := content
	if heading != "" {
		body = theme.Heading.Render(heading) + "\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(body)
}

// MenuButton renders a full-width menu entry.
func MenuButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(label)
}
