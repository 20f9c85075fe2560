package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

// IdeaServiceInterface defines the contract for startup idea persistence used by handlers.
type IdeaServiceInterface interface {
	Save(ctx context.Context, userID uuid.UUID, idea models.StartupIdea, answers models.FormAnswers) (*models.SavedIdea, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.SavedIdea, error)
	Get(ctx context.Context, userID, ideaID uuid.UUID) (*models.SavedIdea, error)
	Delete(ctx context.Context, userID, ideaID uuid.UUID) error
}

var _ IdeaServiceInterface = (*IdeaService)(nil)
