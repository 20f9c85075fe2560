package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormAnswers holds the four wizard inputs. It only lives for the duration of a submission.
type FormAnswers struct {
	TimeCommitment string `json:"timeCommitment"`
	Interests      string `json:"interests"`
	DesiredIncome  string `json:"desiredIncome"`
	Skills         string `json:"skills"`
}

// Complete reports whether every answer has non-whitespace content.
func (a FormAnswers) Complete() bool {
	for _, v := range []string{a.TimeCommitment, a.Interests, a.DesiredIncome, a.Skills} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// StartupIdea is the generated business concept.
type StartupIdea struct {
	Name            string   `json:"name"`
	Concept         string   `json:"concept"`
	Monetization    string   `json:"monetization"`
	ToolsNeeded     []string `json:"toolsNeeded"`
	MVPPlan         []string `json:"mvpPlan"`
	LandingPageHTML string   `json:"landingPageHtml,omitempty"`
}

// Normalize replaces nil sequences with empty ones so callers never see null arrays.
func (i *StartupIdea) Normalize() {
	if i.ToolsNeeded == nil {
		i.ToolsNeeded = []string{}
	}
	if i.MVPPlan == nil {
		i.MVPPlan = []string{}
	}
}

// SavedIdea is a StartupIdea persisted for its owner together with the answers that produced it.
type SavedIdea struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	UserInputs FormAnswers `json:"user_inputs"`
	CreatedAt  time.Time   `json:"created_at"`
	StartupIdea
}

// Idea returns the plain idea portion of a saved row.
func (s SavedIdea) Idea() StartupIdea {
	idea := s.StartupIdea
	idea.Normalize()
	return idea
}
