package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var homeChoices = []string{"Create a new idea", "View saved ideas", "Quit"}

type homeModel struct {
	cursor int
	styles Styles
}

func newHomeModel(styles Styles) homeModel {
	return homeModel{styles: styles}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(homeChoices)-1 {
			m.cursor++
		}
	case "n":
		return m, emit(startWizardMsg{})
	case "h":
		return m, emit(showHistoryMsg{})
	case "q":
		return m, tea.Quit
	case "enter":
		switch m.cursor {
		case 0:
			return m, emit(startWizardMsg{})
		case 1:
			return m, emit(showHistoryMsg{})
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🚀 Micro-Startup Idea Generator"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Answer four questions and get a business you can start this week."))
	b.WriteString("\n\n")
	for i, choice := range homeChoices {
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + choice))
		} else {
			b.WriteString("  " + choice)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("↑/↓ move • enter select • q quit"))
	return b.String()
}

// emit wraps a message as a command.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
