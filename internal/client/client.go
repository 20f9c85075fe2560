// Package client talks to the microstartup server on behalf of one signed-in user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

const clientInfo = "microstartup-cli"

type Client struct {
	baseURL     string
	anonKey     string
	accessToken string
	http        *http.Client
}

func New(cfg *Config) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		anonKey:     cfg.AnonKey,
		accessToken: cfg.AccessToken,
		http:        &http.Client{Timeout: cfg.Timeout},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// GenerateIdea asks the server for an idea. The server stores it for the user
// before answering.
func (c *Client) GenerateIdea(ctx context.Context, answers models.FormAnswers) (*models.StartupIdea, error) {
	body, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/functions/v1/generate-startup-idea", body)
	if err != nil {
		if errors.Is(err, ErrAuthRequired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp, ErrUpstream); err != nil {
		return nil, err
	}

	var idea models.StartupIdea
	if err := json.NewDecoder(resp.Body).Decode(&idea); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	idea.Normalize()
	return &idea, nil
}

// ListIdeas returns the user's saved ideas, newest first.
func (c *Client) ListIdeas(ctx context.Context) ([]models.SavedIdea, error) {
	resp, err := c.do(ctx, http.MethodGet, "/rest/v1/startup_ideas", nil)
	if err != nil {
		return nil, storeError(err)
	}
	defer resp.Body.Close()

	if err := statusError(resp, ErrStore); err != nil {
		return nil, err
	}

	ideas := []models.SavedIdea{}
	if err := json.NewDecoder(resp.Body).Decode(&ideas); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if ideas == nil {
		ideas = []models.SavedIdea{}
	}
	return ideas, nil
}

func (c *Client) GetIdea(ctx context.Context, id uuid.UUID) (*models.SavedIdea, error) {
	resp, err := c.do(ctx, http.MethodGet, "/rest/v1/startup_ideas/"+id.String(), nil)
	if err != nil {
		return nil, storeError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err := statusError(resp, ErrStore); err != nil {
		return nil, err
	}

	var idea models.SavedIdea
	if err := json.NewDecoder(resp.Body).Decode(&idea); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &idea, nil
}

// DeleteIdea removes a saved idea. Deleting an id that no longer exists succeeds.
func (c *Client) DeleteIdea(ctx context.Context, id uuid.UUID) error {
	resp, err := c.do(ctx, http.MethodDelete, "/rest/v1/startup_ideas/"+id.String(), nil)
	if err != nil {
		return storeError(err)
	}
	defer resp.Body.Close()

	return statusError(resp, ErrStore)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c.accessToken == "" {
		return nil, ErrAuthRequired
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("x-client-info", clientInfo)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

func storeError(err error) error {
	if errors.Is(err, ErrAuthRequired) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}

// statusError maps a non-2xx response to ErrAuthRequired or kind, keeping the
// server's error message when it sent one.
func statusError(resp *http.Response, kind error) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	message := string(raw)
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		message = body.Error
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrAuthRequired, message)
	}
	return fmt.Errorf("%w: status %d: %s", kind, resp.StatusCode, message)
}
