package client

import "errors"

var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrUpstream          = errors.New("idea generation failed")
	ErrStore             = errors.New("idea store request failed")
	ErrMalformedResponse = errors.New("malformed response from server")
	ErrNotFound          = errors.New("idea not found")
)
