// Package tui renders the idea generator in the terminal with bubbletea.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#764ba2")
	colorAccent  = lipgloss.Color("#FFC107")
	colorMuted   = lipgloss.Color("#8a8fa3")
	colorError   = lipgloss.Color("#e53935")
	colorSuccess = lipgloss.Color("#8BC34A")
)

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
	Dot      lipgloss.Style
	DotOff   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Body:     lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(colorSuccess),
		Error:    lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary).Padding(1, 2),
		Dot:      lipgloss.NewStyle().Foreground(colorAccent),
		DotOff:   lipgloss.NewStyle().Foreground(colorMuted),
	}
}
