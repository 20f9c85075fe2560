package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HammerMeetNail/microstartup/internal/models"
	"github.com/HammerMeetNail/microstartup/internal/wizard"
)

// wizardModel renders a wizard.Flow. The flow's exit and result callbacks post
// messages to outbox, which Update drains into commands.
type wizardModel struct {
	ctx       context.Context
	flow      *wizard.Flow
	generator wizard.Generator
	input     textinput.Model
	spinner   spinner.Model
	outbox    *[]tea.Msg
	styles    Styles
}

func newWizardModel(ctx context.Context, generator wizard.Generator, styles Styles) wizardModel {
	outbox := &[]tea.Msg{}
	flow := wizard.New(generator,
		func() { *outbox = append(*outbox, goHomeMsg{}) },
		func(idea models.StartupIdea) { *outbox = append(*outbox, showResultMsg{idea: idea}) },
	)

	ti := textinput.New()
	ti.Prompt = "│ "
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Dot

	m := wizardModel{
		ctx:       ctx,
		flow:      flow,
		generator: generator,
		input:     ti,
		spinner:   sp,
		outbox:    outbox,
		styles:    styles,
	}
	m.syncInput()
	return m
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *wizardModel) syncInput() {
	m.input.Placeholder = m.flow.Step().Prompt().Placeholder
	m.input.SetValue(m.flow.Value())
	m.input.CursorEnd()
}

func (m wizardModel) Update(msg tea.Msg) (wizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ideaGeneratedMsg:
		m.flow.Complete(msg.idea)
		return m, m.drain()

	case spinner.TickMsg:
		if !m.flow.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.flow.Loading() {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			if m.flow.CanSubmit() {
				return m, m.submit()
			}
			if m.flow.Next() {
				m.syncInput()
			}
			return m, nil
		case tea.KeyEsc, tea.KeyShiftTab:
			m.flow.Previous()
			m.syncInput()
			return m, m.drain()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.flow.SetValue(m.input.Value())
	return m, cmd
}

// submit runs the generator off the event loop; only the answers cross over.
func (m *wizardModel) submit() tea.Cmd {
	answers, ok := m.flow.BeginSubmit()
	if !ok {
		return nil
	}
	ctx, generator := m.ctx, m.generator
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return ideaGeneratedMsg{idea: generator.Generate(ctx, answers)}
	})
}

func (m wizardModel) drain() tea.Cmd {
	msgs := *m.outbox
	*m.outbox = nil
	cmds := make([]tea.Cmd, 0, len(msgs))
	for _, msg := range msgs {
		cmds = append(cmds, emit(msg))
	}
	return tea.Batch(cmds...)
}

func (m wizardModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Tell Us About You"))
	b.WriteString("\n")

	step := m.flow.Step()
	for i := wizard.StepTimeCommitment; i <= wizard.StepSkills; i++ {
		if i <= step {
			b.WriteString(m.styles.Dot.Render("●"))
		} else {
			b.WriteString(m.styles.DotOff.Render("○"))
		}
		b.WriteString(" ")
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" Step %d of %d", step, wizard.StepCount)))
	b.WriteString("\n\n")

	if m.flow.Loading() {
		b.WriteString(m.spinner.View())
		b.WriteString(" Generating your startup idea...")
		return b.String()
	}

	prompt := step.Prompt()
	b.WriteString(m.styles.Subtitle.Render(prompt.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(prompt.Hint))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render(prompt.Label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	action := "enter next"
	if step == wizard.StepSkills {
		action = "enter generate idea"
	}
	if !m.flow.IsStepValid() {
		action = "type an answer to continue"
	}
	back := "esc previous"
	if step == wizard.StepTimeCommitment {
		back = "esc back"
	}
	b.WriteString(m.styles.Muted.Render(action + " • " + back))
	return b.String()
}
