// Package types is the browsable list of all sixteen type profiles.
package types

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
	"github.com/Sablekanishka11/mbti-mirror/internal/screen"
	"github.com/Sablekanishka11/mbti-mirror/internal/screens/summary"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/layout"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

// group is a temperament: a name plus the rule that puts a code in it.
type group struct {
	name    string
	letters string
	member  func(code personality.TypeCode) bool
}

var groups = []group{
	{"Analysts", "NT", func(c personality.TypeCode) bool { return c[1] == 'N' && c[2] == 'T' }},
	{"Diplomats", "NF", func(c personality.TypeCode) bool { return c[1] == 'N' && c[2] == 'F' }},
	{"Sentinels", "SJ", func(c personality.TypeCode) bool { return c[1] == 'S' && c[3] == 'J' }},
	{"Explorers", "SP", func(c personality.TypeCode) bool { return c[1] == 'S' && c[3] == 'P' }},
}

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowType
)

type row struct {
	kind    rowKind
	group   int
	profile *profiles.Profile
}

// TypesScreen lists every profile grouped by temperament.
type TypesScreen struct {
	insights     *insight.Service
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*TypesScreen)(nil)
var _ screen.KeyHintProvider = (*TypesScreen)(nil)

// New builds the list from catalog. insights may be nil.
func New(catalog *profiles.Catalog, insights *insight.Service) *TypesScreen {
	all := catalog.All()

	var rows []row
	for gi, g := range groups {
		rows = append(rows, row{kind: rowGroupHeader, group: gi})
		for i := range all {
			if g.member(all[i].Code) {
				rows = append(rows, row{kind: rowType, group: gi, profile: &all[i]})
			}
		}
	}

	s := &TypesScreen{rows: rows, insights: insights}
	for i, r := range s.rows {
		if r.kind == rowType {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *TypesScreen) Init() tea.Cmd {
	return nil
}

func (s *TypesScreen) Title() string {
	return "Browse Types"
}

func (s *TypesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Group"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TypesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.jumpGroup(1)
		case "shift+tab":
			s.jumpGroup(-1)
		case "enter":
			return s, s.open()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// Selected returns the code under the cursor.
func (s *TypesScreen) Selected() personality.TypeCode {
	if r := s.rows[s.cursor]; r.profile != nil {
		return r.profile.Code
	}
	return ""
}

// moveCursor moves by delta, skipping group headers.
func (s *TypesScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowType {
			s.cursor = next
			return
		}
		next += delta
	}
}

// jumpGroup moves to the first type of the next (dir > 0) or previous
// group. It does not wrap.
func (s *TypesScreen) jumpGroup(dir int) {
	target := s.rows[s.cursor].group + dir
	if target < 0 || target >= len(groups) {
		return
	}
	for i, r := range s.rows {
		if r.kind == rowType && r.group == target {
			s.cursor = i
			return
		}
	}
}

func (s *TypesScreen) open() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowType || r.profile == nil {
		return nil
	}
	detail := summary.NewProfile(*r.profile, s.insights)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

// adjustScroll keeps the cursor, and the header above it when possible,
// inside the window.
func (s *TypesScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	for top > 0 && s.rows[top-1].kind == rowGroupHeader {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *TypesScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}
	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowGroupHeader:
			lines = append(lines, renderGroupHeader(groups[r.group], width))
		case rowType:
			lines = append(lines, renderTypeRow(*r.profile, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func renderGroupHeader(g group, width int) string {
	title := fmt.Sprintf("%s (%s)", strings.ToUpper(g.name), g.letters)
	return lipgloss.NewStyle().
		Foreground(theme.TypeColor(exampleCode(g))).
		Bold(true).
		Width(width).
		PaddingLeft(2).
		Render(title)
}

// exampleCode returns any code in g, for its color.
func exampleCode(g group) string {
	for _, c := range personality.AllTypeCodes() {
		if g.member(c) {
			return string(c)
		}
	}
	return ""
}

func renderTypeRow(p profiles.Profile, selected bool, width int) string {
	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		cursor = "▸ "
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	code := lipgloss.NewStyle().Bold(true).Foreground(theme.TypeColor(string(p.Code))).Render(string(p.Code))

	nameWidth := max(width-14, 10)
	name := p.Nickname
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}
	return fmt.Sprintf("  %s%s  %s", cursor, code, nameStyle.Render(name))
}
