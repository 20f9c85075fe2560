package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/models"
	"github.com/HammerMeetNail/microstartup/internal/services/ai"
)

type mockIdeaService struct {
	SaveFunc   func(ctx context.Context, userID uuid.UUID, idea models.StartupIdea, answers models.FormAnswers) (*models.SavedIdea, error)
	ListFunc   func(ctx context.Context, userID uuid.UUID) ([]models.SavedIdea, error)
	GetFunc    func(ctx context.Context, userID, ideaID uuid.UUID) (*models.SavedIdea, error)
	DeleteFunc func(ctx context.Context, userID, ideaID uuid.UUID) error
}

func (m *mockIdeaService) Save(ctx context.Context, userID uuid.UUID, idea models.StartupIdea, answers models.FormAnswers) (*models.SavedIdea, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, idea, answers)
	}
	return &models.SavedIdea{ID: uuid.New(), UserID: userID, UserInputs: answers, StartupIdea: idea}, nil
}

func (m *mockIdeaService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedIdea, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []models.SavedIdea{}, nil
}

func (m *mockIdeaService) Get(ctx context.Context, userID, ideaID uuid.UUID) (*models.SavedIdea, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, ideaID)
	}
	return nil, nil
}

func (m *mockIdeaService) Delete(ctx context.Context, userID, ideaID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, ideaID)
	}
	return nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, userID uuid.UUID, answers models.FormAnswers) (*models.StartupIdea, ai.UsageStats, error)
	calls        int
}

func (m *mockGenerator) GenerateIdea(ctx context.Context, userID uuid.UUID, answers models.FormAnswers) (*models.StartupIdea, ai.UsageStats, error) {
	m.calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, userID, answers)
	}
	return &models.StartupIdea{
		Name:         "ChefCuts",
		Concept:      "Short cooking edits.",
		Monetization: "$25 per video",
		ToolsNeeded:  []string{"Camera"},
		MVPPlan:      []string{"Film", "Edit"},
	}, ai.UsageStats{}, nil
}

func withUser(ctx context.Context) (context.Context, *models.User) {
	user := &models.User{ID: uuid.New(), Email: "founder@example.com"}
	return SetUserInContext(ctx, user), user
}
