package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Sablekanishka11/mbti-mirror/internal/logging"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
	"github.com/Sablekanishka11/mbti-mirror/internal/router"
)

func newTestHome(t *testing.T) (*HomeScreen, *results.Service) {
	t.Helper()
	catalog, err := profiles.Default()
	if err != nil {
		t.Fatal(err)
	}
	svc := results.NewService(results.NewMemoryRepo(), catalog, results.WithLogger(logging.Discard()))
	return New(Deps{Results: svc, Catalog: catalog, Owner: "alice"}), svc
}

func load(h *HomeScreen) {
	h.Update(h.Init()())
}

func enter(h *HomeScreen) tea.Msg {
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestHome_NoResultYet(t *testing.T) {
	h, _ := newTestHome(t)
	load(h)

	if !h.menu.Items[itemLast].Disabled {
		t.Error("LAST RESULT should be disabled with no history")
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "haven't taken the quiz") {
		t.Error("expected the take-the-quiz nudge")
	}
	if !strings.Contains(view, "AI insights are off") {
		t.Error("expected the insight banner without a provider")
	}
}

func TestHome_LatestResult(t *testing.T) {
	h, svc := newTestHome(t)
	answers := personality.AnswerSet{}
	for _, id := range svc.Bank().IDs() {
		answers[id] = personality.ChoiceA
	}
	if _, err := svc.Submit(t.Context(), "alice", answers); err != nil {
		t.Fatal(err)
	}
	load(h)

	if h.latest == nil || h.latest.TypeCode != "ESTJ" {
		t.Fatalf("latest = %v, want ESTJ", h.latest)
	}
	if h.menu.Items[itemLast].Disabled {
		t.Error("LAST RESULT should be enabled")
	}
	if !strings.Contains(h.View(120, 40), "The Executive") {
		t.Error("latest card should show the nickname")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	push, ok := enter(h).(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Your Result" {
		t.Errorf("expected the result screen, got %#v", push)
	}
}

func TestHome_MenuNavigation(t *testing.T) {
	h, _ := newTestHome(t)
	load(h)

	tests := []struct {
		downs int
		title string
	}{
		{0, "Quiz"},
		{1, "My Results"}, // skips the disabled LAST RESULT
		{2, "Browse Types"},
	}
	for _, tt := range tests {
		h.menu.Selected = 0
		for range tt.downs {
			h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		}
		push, ok := enter(h).(router.PushScreenMsg)
		if !ok {
			t.Fatalf("downs=%d: expected PushScreenMsg", tt.downs)
		}
		if push.Screen.Title() != tt.title {
			t.Errorf("downs=%d: title = %q, want %q", tt.downs, push.Screen.Title(), tt.title)
		}
	}
}

func TestHome_UpdateNote(t *testing.T) {
	h, _ := newTestHome(t)
	h.deps.LatestVersion = "v1.2.0"
	if !strings.Contains(h.View(120, 40), "New version v1.2.0") {
		t.Error("expected the update note")
	}
}

func TestRenderMirror(t *testing.T) {
	if !strings.Contains(RenderMirror("INFJ"), "INFJ") {
		t.Error("mirror should reflect the code")
	}
	if !strings.Contains(RenderMirror(""), "? ?") {
		t.Error("blank mirror should show question marks")
	}
}
