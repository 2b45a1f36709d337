package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

const mirrorBlank = `╭───────╮
│ ╲     │
│   ? ? │
│     ╲ │
╰───┬───╯
  ──┴──`

const mirrorFrame = `╭───────╮
│ ╲     │
│  %s │
│     ╲ │
╰───┬───╯
  ──┴──`

// RenderMirror draws the hand mirror. With a code it shows the reflection
// in the type's temperament color; without one it shows question marks.
func RenderMirror(code personality.TypeCode) string {
	if code == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(mirrorBlank)
	}
	color := theme.TypeColor(string(code))
	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf(mirrorFrame, code))
}

func renderMirrorBox(code string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMirror(personality.TypeCode(code)))
}
