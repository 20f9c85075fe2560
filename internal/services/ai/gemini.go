package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/config"
	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/metrics"
	"github.com/HammerMeetNail/microstartup/internal/models"
	"github.com/HammerMeetNail/microstartup/internal/services"
)

const defaultModel = "gemini-2.5-flash-lite"

var geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Service asks Gemini for a startup idea and records per-call usage.
type Service struct {
	apiKey string
	model  string
	stub   bool
	client *http.Client
	db     services.DBConn
}

func NewService(cfg *config.Config, db services.DBConn) *Service {
	model := cfg.AI.GeminiModel
	if model == "" {
		model = defaultModel
	}
	return &Service{
		apiKey: cfg.AI.GeminiAPIKey,
		model:  model,
		stub:   cfg.AI.Stub,
		client: &http.Client{Timeout: 30 * time.Second},
		db:     db,
	}
}

// Configured reports whether GenerateIdea can reach a provider at all.
func (s *Service) Configured() bool {
	return s.stub || strings.TrimSpace(s.apiKey) != ""
}

type UsageStats struct {
	Model        string
	TokensInput  int
	TokensOutput int
	Duration     time.Duration
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Usage      geminiUsage       `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

func (s *Service) GenerateIdea(ctx context.Context, userID uuid.UUID, answers models.FormAnswers) (*models.StartupIdea, UsageStats, error) {
	start := time.Now()
	log := logging.FromContext(ctx).WithField("user_id", userID.String())

	if s.stub {
		idea, err := ParseIdea(stubResponse(answers))
		stats := UsageStats{Model: "stub", Duration: time.Since(start)}
		s.record(userID, stats, statusFor(err))
		return idea, stats, err
	}

	if strings.TrimSpace(s.apiKey) == "" {
		log.Warn("Gemini API key missing; idea generation unavailable")
		metrics.Generations.WithLabelValues("not_configured").Inc()
		return nil, UsageStats{}, ErrNotConfigured
	}

	prompt := BuildPrompt(answers)
	jsonBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, UsageStats{}, fmt.Errorf("%w: failed to marshal request", ErrUpstream)
	}

	// Request metadata only; answers stay out of the logs.
	log.Info("Sending request to Gemini", map[string]interface{}{
		"model":         s.model,
		"prompt_length": len(prompt),
	})

	url := fmt.Sprintf("%s/%s:generateContent", geminiBaseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, UsageStats{}, fmt.Errorf("%w: failed to create request: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.record(userID, UsageStats{Model: s.model, Duration: time.Since(start)}, "error")
		return nil, UsageStats{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.record(userID, UsageStats{Model: s.model, Duration: time.Since(start)}, "error")
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		log.Error("Gemini non-200 response", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(preview),
		})
		return nil, UsageStats{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		s.record(userID, UsageStats{Model: s.model, Duration: time.Since(start)}, "error")
		return nil, UsageStats{}, fmt.Errorf("%w: failed to decode response", ErrUpstream)
	}

	stats := UsageStats{
		Model:        s.model,
		TokensInput:  geminiResp.Usage.PromptTokenCount,
		TokensOutput: geminiResp.Usage.CandidatesTokenCount,
		Duration:     time.Since(start),
	}

	text, ok := firstCandidateText(geminiResp)
	if !ok {
		s.record(userID, stats, "error")
		return nil, stats, fmt.Errorf("%w: response has no candidate text", ErrUpstream)
	}
	log.Info("Received response from Gemini", map[string]interface{}{
		"response_length": len(text),
	})

	idea, err := ParseIdea(text)
	if err != nil {
		s.record(userID, stats, "malformed")
		return nil, stats, err
	}

	s.record(userID, stats, "success")
	return idea, stats, nil
}

func firstCandidateText(resp geminiResponse) (string, bool) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	return text, text != ""
}

func statusFor(err error) string {
	if err != nil {
		return "malformed"
	}
	return "success"
}

// record updates the generation metrics and writes a usage row. The write gets its
// own short deadline so a cancelled request still leaves an audit trail.
func (s *Service) record(userID uuid.UUID, stats UsageStats, status string) {
	metrics.Generations.WithLabelValues(status).Inc()
	metrics.GenerationDuration.Observe(stats.Duration.Seconds())

	if s.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.logUsage(ctx, userID, stats, status)
}

func (s *Service) logUsage(ctx context.Context, userID uuid.UUID, stats UsageStats, status string) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_generation_logs (user_id, model, tokens_input, tokens_output, duration_ms, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, stats.Model, stats.TokensInput, stats.TokensOutput, stats.Duration.Milliseconds(), status)
	if err != nil {
		logging.Error("Failed to log AI usage", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID.String(),
		})
	}
}
