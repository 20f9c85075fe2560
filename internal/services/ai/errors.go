package ai

import "errors"

var (
	ErrUpstream          = errors.New("generation provider request failed")
	ErrMalformedResponse = errors.New("generation provider returned no idea JSON")
	// Worded for end users; the generate function returns it verbatim.
	ErrNotConfigured = errors.New("Gemini API key not found")
)
