package tui

import (
	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

// Screen-change requests sent from child views to the App.
type (
	goHomeMsg      struct{}
	startWizardMsg struct{}
	showHistoryMsg struct{}
	showResultMsg  struct {
		idea        models.StartupIdea
		fromHistory bool
	}
)

type ideaGeneratedMsg struct {
	idea models.StartupIdea
}

type ideasLoadedMsg struct {
	ideas []models.SavedIdea
	err   error
}

type ideaFetchedMsg struct {
	idea *models.SavedIdea
	err  error
}

type ideaDeletedMsg struct {
	id  uuid.UUID
	err error
}

type copiedResetMsg struct {
	seq int
}
