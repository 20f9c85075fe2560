// Package testutil provides helpers for exercising the HTTP API in tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

const AnonKey = "test-anon-key"

// Answers is a complete set of form answers.
func Answers() models.FormAnswers {
	return models.FormAnswers{
		TimeCommitment: "5-10 hours",
		Interests:      "cooking",
		DesiredIncome:  "$1000",
		Skills:         "video editing",
	}
}

// Idea is a fully populated idea.
func Idea() models.StartupIdea {
	return models.StartupIdea{
		Name:            "ChefCuts",
		Concept:         "Short cooking clips for busy parents.",
		Monetization:    "Sponsored recipes and a paid meal plan.",
		ToolsNeeded:     []string{"CapCut", "Canva"},
		MVPPlan:         []string{"Day 1: film three clips", "Day 2: post and measure"},
		LandingPageHTML: "<html><body>ChefCuts</body></html>",
	}
}

// AssertStatusCode checks if the response has the expected status code.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// AssertJSONContains checks if the JSON response contains expected key-value pairs.
func AssertJSONContains(t *testing.T, body []byte, key string, expected interface{}) {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if result[key] != expected {
		t.Errorf("expected %s to be %v, got %v", key, expected, result[key])
	}
}

// NewTestRequest creates an API request carrying the anon key.
func NewTestRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", AnonKey)
	return req
}

// NewTestRequestWithJSON creates an API request with a JSON body.
func NewTestRequestWithJSON(t *testing.T, method, path string, data interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return NewTestRequest(method, path, strings.NewReader(string(body)))
}

// WithBearer adds an access token to req.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// RandomUser generates a signed-in user for testing.
func RandomUser() models.User {
	return models.User{ID: uuid.New(), Email: uuid.New().String()[:8] + "@test.com", Role: "authenticated"}
}

// DecodeJSON parses a response body into T.
func DecodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\n%s", err, body)
	}
	return result
}
