package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/models"
	"github.com/HammerMeetNail/microstartup/internal/services"
	"github.com/HammerMeetNail/microstartup/internal/services/ai"
)

type IdeaGenerator interface {
	GenerateIdea(ctx context.Context, userID uuid.UUID, answers models.FormAnswers) (*models.StartupIdea, ai.UsageStats, error)
}

// GenerateHandler serves the generate-startup-idea function: one round trip that
// asks the provider for an idea and stores it for the caller.
type GenerateHandler struct {
	generator IdeaGenerator
	ideas     services.IdeaServiceInterface
}

func NewGenerateHandler(generator IdeaGenerator, ideas services.IdeaServiceInterface) *GenerateHandler {
	return &GenerateHandler{generator: generator, ideas: ideas}
}

// Generate answers with the idea JSON or 500 {error}; clients treat any failure
// the same way and fall back.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusInternalServerError, "User not authenticated")
		return
	}

	var answers models.FormAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusInternalServerError, "Invalid request body")
		return
	}
	if !answers.Complete() {
		writeError(w, http.StatusInternalServerError, "All four answers are required")
		return
	}

	idea, _, err := h.generator.GenerateIdea(r.Context(), user.ID, answers)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Idea generation failed", map[string]interface{}{
			"user_id": user.ID.String(),
		})
		writeError(w, http.StatusInternalServerError, generationErrorMessage(err))
		return
	}

	saved, err := h.ideas.Save(r.Context(), user.ID, *idea, answers)
	observeIdeaOperation("save", err)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Failed to save generated idea", map[string]interface{}{
			"user_id": user.ID.String(),
		})
		if errors.Is(err, services.ErrAuthRequired) {
			writeError(w, http.StatusInternalServerError, "User not authenticated")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, saved.Idea())
}

func generationErrorMessage(err error) string {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return "Gemini API key not found"
	case errors.Is(err, ai.ErrMalformedResponse):
		return "Invalid JSON response from Gemini"
	case errors.Is(err, ai.ErrUpstream):
		return "Gemini API error"
	default:
		return "An unexpected error occurred."
	}
}
