package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

// ChoiceList renders labelled options with a cursor and a recorded answer.
// Chosen is the index of the recorded answer, or -1.
type ChoiceList struct {
	Labels  []string
	Options []string
	Cursor  int
	Chosen  int
	Width   int
}

// View renders one bordered box per option.
func (c ChoiceList) View() string {
	boxes := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		label := ""
		if i < len(c.Labels) {
			label = c.Labels[i] + "  "
		}
		text := label + opt
		if i == c.Chosen {
			text += "  ✓"
		}

		style := lipgloss.NewStyle().
			Width(c.Width).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
		switch {
		case i == c.Cursor:
			style = style.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
		case i == c.Chosen:
			style = style.BorderForeground(theme.Success).Foreground(theme.Success)
		default:
			style = style.BorderForeground(theme.Border).Foreground(theme.Text)
		}
		boxes = append(boxes, style.Render(text))
	}
	return strings.Join(boxes, "\n")
}
