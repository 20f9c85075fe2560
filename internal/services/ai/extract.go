package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

// ExtractJSONObject returns the text from the first '{' to the last '}' inclusive.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}
	return text[start : end+1], nil
}

// providerIdea accepts both camelCase and snake_case keys; models answer in either.
type providerIdea struct {
	Name                 string   `json:"name"`
	Concept              string   `json:"concept"`
	Monetization         string   `json:"monetization"`
	ToolsNeeded          []string `json:"toolsNeeded"`
	ToolsNeededSnake     []string `json:"tools_needed"`
	MVPPlan              []string `json:"mvpPlan"`
	MVPPlanSnake         []string `json:"mvp_plan"`
	LandingPageHTML      string   `json:"landingPageHtml"`
	LandingPageHTMLSnake string   `json:"landing_page_html"`
}

// ParseIdea extracts and decodes the idea object embedded in free provider text.
func ParseIdea(text string) (*models.StartupIdea, error) {
	raw, err := ExtractJSONObject(stripMarkdownCodeBlock(text))
	if err != nil {
		return nil, err
	}

	var p providerIdea
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	idea := &models.StartupIdea{
		Name:            strings.TrimSpace(p.Name),
		Concept:         strings.TrimSpace(p.Concept),
		Monetization:    strings.TrimSpace(p.Monetization),
		ToolsNeeded:     firstNonNil(p.ToolsNeeded, p.ToolsNeededSnake),
		MVPPlan:         firstNonNil(p.MVPPlan, p.MVPPlanSnake),
		LandingPageHTML: p.LandingPageHTML,
	}
	if idea.LandingPageHTML == "" {
		idea.LandingPageHTML = p.LandingPageHTMLSnake
	}
	idea.Normalize()
	return idea, nil
}

func firstNonNil(a, b []string) []string {
	if a != nil {
		return a
	}
	return b
}

// stripMarkdownCodeBlock removes leading and trailing ```json or ``` fences.
func stripMarkdownCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
