package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗██████╗ ████████╗██╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║
 ██╔████╔██║██████╔╝   ██║   ██║
 ██║╚██╔╝██║██╔══██╗   ██║   ██║
 ██║ ╚═╝ ██║██████╔╝   ██║   ██║
 ╚═╝     ╚═╝╚═════╝    ╚═╝   ╚═╝`

const bannerSub = "M  I  R  R  O  R"

const bannerCompact = "M B T I   M I R R O R"

// RenderBanner returns the styled banner, or a one-line version for
// terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	sub := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(lipgloss.Width(bannerArt)).
		Align(lipgloss.Center).
		Render(bannerSub)
	return style.Render(bannerArt) + "\n" + sub
}
