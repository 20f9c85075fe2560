package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

type fakeStore struct {
	mu        sync.Mutex
	ideas     []models.SavedIdea
	listErr   error
	getErr    error
	deleteErr error
	deleted   []uuid.UUID
}

func (s *fakeStore) ListIdeas(ctx context.Context) ([]models.SavedIdea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.SavedIdea(nil), s.ideas...), nil
}

func (s *fakeStore) GetIdea(ctx context.Context, id uuid.UUID) (*models.SavedIdea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, idea := range s.ideas {
		if idea.ID == id {
			found := idea
			return &found, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeStore) DeleteIdea(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeGenerator struct {
	idea    models.StartupIdea
	answers []models.FormAnswers
}

func (g *fakeGenerator) Generate(ctx context.Context, answers models.FormAnswers) models.StartupIdea {
	g.answers = append(g.answers, answers)
	return g.idea
}

func savedIdea(name string, created time.Time) models.SavedIdea {
	return models.SavedIdea{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CreatedAt: created,
		StartupIdea: models.StartupIdea{
			Name:        name,
			Concept:     name + " concept",
			ToolsNeeded: []string{"Canva"},
			MVPPlan:     []string{"Day 1"},
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(t, c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
