package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/components"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/layout"
	"github.com/Sablekanishka11/mbti-mirror/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height, s.session.Answered())
	}

	cw := components.ContentWidth(width)
	q := s.session.Current()

	var sections []string

	label := fmt.Sprintf("Question %d of %d", s.session.Index()+1, s.session.Len())
	sections = append(sections, components.NewProgressBar(label, s.session.Progress(), true, cw).View())

	if n := s.session.Answered(); n > 0 {
		live := s.session.Live()
		lean := lipgloss.NewStyle().Foreground(theme.TypeColor(string(live))).Bold(true).Render(string(live))
		sections = append(sections, theme.Hint.Render(fmt.Sprintf("%d answered · leaning ", n))+lean)
	} else {
		sections = append(sections, theme.Hint.Render("Pick the option that sounds most like you."))
	}
	sections = append(sections, "")

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(layout.Wrap(q.Text, cw)))
	sections = append(sections, "")

	chosen := -1
	if c, ok := s.session.Selected(); ok {
		chosen = 0
		if c == personality.ChoiceB {
			chosen = 1
		}
	}
	optionCursor := s.cursor
	if optionCursor == cursorSubmit {
		optionCursor = -1
	}
	sections = append(sections, components.ChoiceList{
		Labels:  []string{"A", "B"},
		Options: []string{q.A.Text, q.B.Text},
		Cursor:  optionCursor,
		Chosen:  chosen,
		Width:   cw,
	}.View())

	if s.session.IsLast() {
		sections = append(sections, "")
		btn := components.NewButton("Submit", s.cursor == cursorSubmit, nil)
		if !s.session.AllAnswered() {
			missing := s.session.Len() - s.session.Answered()
			sections = append(sections, theme.Hint.Render(fmt.Sprintf("Answer the remaining %d question(s) to submit.", missing)))
		} else {
			sections = append(sections, btn.View())
		}
	}

	switch {
	case s.submitting:
		sections = append(sections, "", theme.Hint.Render("Saving your result..."))
	case s.errMsg != "":
		sections = append(sections, "", theme.Failed.Render(s.errMsg))
		if s.pending != nil {
			sections = append(sections, theme.Hint.Render("Press R to try saving again."))
		}
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderQuitConfirm(width, height, answered int) string {
	box := theme.Card.Render(
		theme.Heading.Render("Leave the quiz?") + "\n\n" +
			theme.Body.Render(fmt.Sprintf("Your %d answer(s) will be lost.", answered)) + "\n\n" +
			theme.Hint.Render("Y to leave · N to keep going"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
