package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/models"
)

var clipboardWriteAll = clipboard.WriteAll

const copiedFor = 2 * time.Second

type resultModel struct {
	idea       models.StartupIdea
	copied     bool
	copySeq    int
	copyErr    string
	backTarget tea.Msg
	styles     Styles
}

func newResultModel(idea models.StartupIdea, fromHistory bool, styles Styles) resultModel {
	idea.Normalize()
	var back tea.Msg = goHomeMsg{}
	if fromHistory {
		back = showHistoryMsg{}
	}
	return resultModel{idea: idea, backTarget: back, styles: styles}
}

func (m resultModel) Update(msg tea.Msg) (resultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			return m.copyLandingPage()
		case "n":
			return m, emit(startWizardMsg{})
		case "h":
			return m, emit(showHistoryMsg{})
		case "esc", "b":
			return m, emit(m.backTarget)
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m resultModel) copyLandingPage() (resultModel, tea.Cmd) {
	if m.idea.LandingPageHTML == "" {
		return m, nil
	}
	if err := clipboardWriteAll(m.idea.LandingPageHTML); err != nil {
		logging.Default.WithError(err).Warn("Failed to copy landing page")
		m.copyErr = "Could not copy to clipboard."
		return m, nil
	}
	m.copyErr = ""
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	return m, tea.Tick(copiedFor, func(time.Time) tea.Msg {
		return copiedResetMsg{seq: seq}
	})
}

func (m resultModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("✨ " + m.idea.Name))
	b.WriteString("\n")

	section := func(label, body string) {
		b.WriteString(m.styles.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(m.styles.Body.Render(body))
		b.WriteString("\n\n")
	}
	list := func(label string, items []string, numbered bool) {
		b.WriteString(m.styles.Label.Render(label))
		b.WriteString("\n")
		for i, item := range items {
			if numbered {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, item)
			} else {
				fmt.Fprintf(&b, "  • %s\n", item)
			}
		}
		b.WriteString("\n")
	}

	section("Concept", m.idea.Concept)
	section("Monetization Strategy", m.idea.Monetization)
	list("Tools Needed", m.idea.ToolsNeeded, false)
	list("7-Day MVP Plan", m.idea.MVPPlan, true)

	if m.idea.LandingPageHTML != "" {
		b.WriteString(m.styles.Label.Render("Landing Page"))
		b.WriteString("  ")
		switch {
		case m.copied:
			b.WriteString(m.styles.Success.Render("Copied!"))
		case m.copyErr != "":
			b.WriteString(m.styles.Error.Render(m.copyErr))
		default:
			b.WriteString(m.styles.Muted.Render("press c to copy the HTML"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Muted.Render("n new idea • h saved ideas • esc back • q quit"))
	return b.String()
}
