package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

func mockClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var written []string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		written = append(written, text)
		return err
	}
	t.Cleanup(func() { clipboardWriteAll = orig })
	return &written
}

func sampleIdea() models.StartupIdea {
	return models.StartupIdea{
		Name:            "Meal Prep Mentor",
		Concept:         "Weekly meal prep coaching.",
		Monetization:    "Subscriptions.",
		ToolsNeeded:     []string{"Canva", "Stripe"},
		MVPPlan:         []string{"Day 1: survey", "Day 2: landing page"},
		LandingPageHTML: "<html><body>Meal Prep Mentor</body></html>",
	}
}

func TestResultCopyWritesLandingPage(t *testing.T) {
	written := mockClipboard(t, nil)
	m := newResultModel(sampleIdea(), false, DefaultStyles())

	m, cmd := m.Update(keyRunes("c"))
	if cmd == nil {
		t.Fatal("expected a reset tick after copying")
	}
	if len(*written) != 1 || (*written)[0] != sampleIdea().LandingPageHTML {
		t.Fatalf("clipboard got %v", *written)
	}
	if !m.copied {
		t.Fatal("expected copied state")
	}
	if !strings.Contains(m.View(), "Copied!") {
		t.Error("view should show Copied!")
	}

	m, _ = m.Update(copiedResetMsg{seq: m.copySeq})
	if m.copied {
		t.Error("reset should clear copied state")
	}
	if strings.Contains(m.View(), "Copied!") {
		t.Error("view should no longer show Copied!")
	}
}

func TestResultStaleResetKeepsCopied(t *testing.T) {
	mockClipboard(t, nil)
	m := newResultModel(sampleIdea(), false, DefaultStyles())

	m, _ = m.Update(keyRunes("c"))
	first := m.copySeq
	m, _ = m.Update(keyRunes("c"))

	m, _ = m.Update(copiedResetMsg{seq: first})
	if !m.copied {
		t.Error("reset from the first copy should not clear the second")
	}
}

func TestResultCopyWithoutLandingPage(t *testing.T) {
	written := mockClipboard(t, nil)
	idea := sampleIdea()
	idea.LandingPageHTML = ""
	m := newResultModel(idea, false, DefaultStyles())

	m, cmd := m.Update(keyRunes("c"))
	if cmd != nil {
		t.Error("expected no command")
	}
	if len(*written) != 0 {
		t.Errorf("clipboard should be untouched, got %v", *written)
	}
	if m.copied {
		t.Error("nothing was copied")
	}
	if strings.Contains(m.View(), "Landing Page") {
		t.Error("landing page section should be hidden")
	}
}

func TestResultCopyFailure(t *testing.T) {
	mockClipboard(t, errors.New("no clipboard"))
	m := newResultModel(sampleIdea(), false, DefaultStyles())

	m, cmd := m.Update(keyRunes("c"))
	if cmd != nil {
		t.Error("expected no reset tick")
	}
	if m.copied {
		t.Error("copied should stay false")
	}
	if !strings.Contains(m.View(), "Could not copy") {
		t.Error("view should report the failure")
	}
}

func TestResultView(t *testing.T) {
	view := newResultModel(sampleIdea(), false, DefaultStyles()).View()
	for _, want := range []string{
		"Meal Prep Mentor",
		"Weekly meal prep coaching.",
		"Subscriptions.",
		"• Canva",
		"• Stripe",
		"1. Day 1: survey",
		"2. Day 2: landing page",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultNavigation(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		fromHistory bool
		want        tea.Msg
	}{
		{"new idea", "n", false, startWizardMsg{}},
		{"history", "h", false, showHistoryMsg{}},
		{"back home", "esc", false, goHomeMsg{}},
		{"back to history", "esc", true, showHistoryMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newResultModel(sampleIdea(), tt.fromHistory, DefaultStyles())
			var key tea.KeyMsg
			if tt.key == "esc" {
				key = tea.KeyMsg{Type: tea.KeyEsc}
			} else {
				key = keyRunes(tt.key)
			}
			_, cmd := m.Update(key)
			msgs := collect(t, cmd)
			if len(msgs) != 1 || msgs[0] != tt.want {
				t.Errorf("got %#v, want %#v", msgs, tt.want)
			}
		})
	}
}
