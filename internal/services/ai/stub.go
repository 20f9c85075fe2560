package ai

import (
	"encoding/json"
	"fmt"
	"html"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

// stubResponse imitates a provider reply, prose and code fence included, so the
// extraction path runs the same way it does against Gemini.
func stubResponse(answers models.FormAnswers) string {
	interests := sanitizeInput(answers.Interests)
	idea := models.StartupIdea{
		Name:         "Stub Studio",
		Concept:      fmt.Sprintf("A small service built around %s for people with %s to spare.", interests, sanitizeInput(answers.TimeCommitment)),
		Monetization: fmt.Sprintf("Monthly subscription aimed at %s", sanitizeInput(answers.DesiredIncome)),
		ToolsNeeded:  []string{"Website builder", "Payment processor", "Email list"},
		MVPPlan: []string{
			"Interview five potential customers",
			"Publish a one-page offer",
			"Take the first paid order",
		},
		LandingPageHTML: fmt.Sprintf("<!DOCTYPE html><html><body><h1>Stub Studio</h1><p>%s</p></body></html>", html.EscapeString(interests)),
	}
	body, _ := json.MarshalIndent(idea, "", "  ")
	return "Here is your idea:\n```json\n" + string(body) + "\n```\nGood luck!"
}
