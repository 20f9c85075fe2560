package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HammerMeetNail/microstartup/internal/wizard"
)

type screen int

const (
	screenHome screen = iota
	screenWizard
	screenResult
	screenHistory
)

// App is the root model. It owns the current screen and routes navigation
// messages between them.
type App struct {
	ctx       context.Context
	store     Store
	generator wizard.Generator
	styles    Styles

	screen  screen
	home    homeModel
	wizard  wizardModel
	result  resultModel
	history historyModel
}

type Option func(*App)

// StartInWizard opens the form directly instead of the home menu.
func StartInWizard() Option {
	return func(a *App) { a.screen = screenWizard }
}

// StartInHistory opens the saved-ideas list directly.
func StartInHistory() Option {
	return func(a *App) { a.screen = screenHistory }
}

func NewApp(ctx context.Context, store Store, generator wizard.Generator, opts ...Option) *App {
	styles := DefaultStyles()
	a := &App{
		ctx:       ctx,
		store:     store,
		generator: generator,
		styles:    styles,
		home:      newHomeModel(styles),
	}
	for _, opt := range opts {
		opt(a)
	}
	switch a.screen {
	case screenWizard:
		a.wizard = newWizardModel(ctx, generator, styles)
	case screenHistory:
		a.history = newHistoryModel(ctx, store, styles)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	switch a.screen {
	case screenWizard:
		return a.wizard.Init()
	case screenHistory:
		return a.history.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	case goHomeMsg:
		a.screen = screenHome
		return a, nil
	case startWizardMsg:
		a.screen = screenWizard
		a.wizard = newWizardModel(a.ctx, a.generator, a.styles)
		return a, a.wizard.Init()
	case showHistoryMsg:
		a.screen = screenHistory
		a.history = newHistoryModel(a.ctx, a.store, a.styles)
		return a, a.history.Init()
	case showResultMsg:
		a.screen = screenResult
		a.result = newResultModel(msg.idea, msg.fromHistory, a.styles)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenHome:
		a.home, cmd = a.home.Update(msg)
	case screenWizard:
		a.wizard, cmd = a.wizard.Update(msg)
	case screenResult:
		a.result, cmd = a.result.Update(msg)
	case screenHistory:
		a.history, cmd = a.history.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenWizard:
		body = a.wizard.View()
	case screenResult:
		body = a.result.View()
	case screenHistory:
		body = a.history.View()
	default:
		body = a.home.View()
	}
	return a.styles.Box.Render(body) + "\n"
}
