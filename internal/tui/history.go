package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/models"
)

const historyDateLayout = "Jan 2, 2006"

const (
	noticeLoadFailed   = "Failed to load your startup ideas."
	noticeDeleted      = "Startup idea deleted successfully."
	noticeDeleteFailed = "Failed to delete startup idea."
	noticeOpenFailed   = "Failed to open startup idea."
)

// Store is the persisted-idea API the history screen needs.
type Store interface {
	ListIdeas(ctx context.Context) ([]models.SavedIdea, error)
	GetIdea(ctx context.Context, id uuid.UUID) (*models.SavedIdea, error)
	DeleteIdea(ctx context.Context, id uuid.UUID) error
}

type historyModel struct {
	ctx     context.Context
	store   Store
	ideas   []models.SavedIdea
	cursor  int
	loading bool
	notice  string
	failed  bool
	styles  Styles
}

func newHistoryModel(ctx context.Context, store Store, styles Styles) historyModel {
	return historyModel{ctx: ctx, store: store, loading: true, styles: styles}
}

func (m historyModel) Init() tea.Cmd {
	return m.load()
}

func (m historyModel) load() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		ideas, err := store.ListIdeas(ctx)
		return ideasLoadedMsg{ideas: ideas, err: err}
	}
}

func (m historyModel) selected() (models.SavedIdea, bool) {
	if m.cursor < 0 || m.cursor >= len(m.ideas) {
		return models.SavedIdea{}, false
	}
	return m.ideas[m.cursor], true
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ideasLoadedMsg:
		m.loading = false
		if msg.err != nil {
			logging.FromContext(m.ctx).WithError(msg.err).Error("Failed to load ideas")
			m.setNotice(noticeLoadFailed, true)
			return m, nil
		}
		m.ideas = msg.ideas
		m.clampCursor()
		return m, nil

	case ideaFetchedMsg:
		if msg.err != nil || msg.idea == nil {
			logging.FromContext(m.ctx).WithError(msg.err).Error("Failed to fetch idea")
			m.setNotice(noticeOpenFailed, true)
			return m, nil
		}
		return m, emit(showResultMsg{idea: msg.idea.Idea(), fromHistory: true})

	case ideaDeletedMsg:
		if msg.err != nil {
			logging.FromContext(m.ctx).WithError(msg.err).Error("Failed to delete idea")
			m.setNotice(noticeDeleteFailed, true)
			return m, nil
		}
		m.remove(msg.id)
		m.setNotice(noticeDeleted, false)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			if msg.String() == "esc" {
				return m, emit(goHomeMsg{})
			}
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.ideas)-1 {
				m.cursor++
			}
		case "enter":
			if idea, ok := m.selected(); ok {
				return m, m.open(idea.ID)
			}
		case "d":
			if idea, ok := m.selected(); ok {
				return m, m.delete(idea.ID)
			}
		case "r":
			m.loading = true
			m.notice = ""
			return m, m.load()
		case "n":
			return m, emit(startWizardMsg{})
		case "esc":
			return m, emit(goHomeMsg{})
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m historyModel) open(id uuid.UUID) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		idea, err := store.GetIdea(ctx, id)
		return ideaFetchedMsg{idea: idea, err: err}
	}
}

func (m historyModel) delete(id uuid.UUID) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return ideaDeletedMsg{id: id, err: store.DeleteIdea(ctx, id)}
	}
}

func (m *historyModel) remove(id uuid.UUID) {
	kept := m.ideas[:0:0]
	for _, idea := range m.ideas {
		if idea.ID != id {
			kept = append(kept, idea)
		}
	}
	m.ideas = kept
	m.clampCursor()
}

func (m *historyModel) clampCursor() {
	if m.cursor >= len(m.ideas) {
		m.cursor = len(m.ideas) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *historyModel) setNotice(text string, failed bool) {
	m.notice = text
	m.failed = failed
}

func (m historyModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your Startup Ideas"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case len(m.ideas) == 0 && !m.failed:
		b.WriteString("No startup ideas yet. Press n to create your first one.\n")
	default:
		for i, idea := range m.ideas {
			line := idea.Name + "  " + m.styles.Muted.Render(idea.CreatedAt.Format(historyDateLayout))
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
			if i == m.cursor && idea.Concept != "" {
				b.WriteString("    " + m.styles.Muted.Render(idea.Concept) + "\n")
			}
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(m.styles.Error.Render(m.notice))
		} else {
			b.WriteString(m.styles.Success.Render(m.notice))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("↑/↓ move • enter open • d delete • r reload • n new • esc back"))
	return b.String()
}
