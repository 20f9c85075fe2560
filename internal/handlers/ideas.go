package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/metrics"
	"github.com/HammerMeetNail/microstartup/internal/services"
)

// IdeasHandler serves the caller's saved ideas. Routes must sit behind
// middleware.RequireAuth; every method expects a user in the context.
type IdeasHandler struct {
	ideas services.IdeaServiceInterface
}

func NewIdeasHandler(ideas services.IdeaServiceInterface) *IdeasHandler {
	return &IdeasHandler{ideas: ideas}
}

func (h *IdeasHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	ideas, err := h.ideas.List(r.Context(), user.ID)
	observeIdeaOperation("list", err)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Failed to list ideas")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, ideas)
}

func (h *IdeasHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	ideaID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	idea, err := h.ideas.Get(r.Context(), user.ID, ideaID)
	if errors.Is(err, services.ErrIdeaNotFound) {
		observeIdeaOperation("get", nil)
		writeError(w, http.StatusNotFound, "Idea not found")
		return
	}
	observeIdeaOperation("get", err)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Failed to get idea")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

// Delete answers 204 whether or not the row existed.
func (h *IdeasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	ideaID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	err = h.ideas.Delete(r.Context(), user.ID, ideaID)
	observeIdeaOperation("delete", err)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Failed to delete idea", map[string]interface{}{
			"idea_id": ideaID.String(),
		})
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func observeIdeaOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.IdeaOperations.WithLabelValues(operation, status).Inc()
}
