// Package generation turns wizard answers into an idea, falling back to a fixed
// template whenever the server cannot produce one.
package generation

import (
	"context"
	"errors"
	"time"

	"github.com/HammerMeetNail/microstartup/internal/client"
	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/models"
)

const defaultFallbackDelay = time.Second

// Remote produces an idea from answers. *client.Client satisfies it.
type Remote interface {
	GenerateIdea(ctx context.Context, answers models.FormAnswers) (*models.StartupIdea, error)
}

type Orchestrator struct {
	remote Remote
	delay  time.Duration
	logger *logging.Logger
}

type Option func(*Orchestrator)

// WithFallbackDelay sets the pause before a fallback idea is returned.
func WithFallbackDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.delay = d }
}

func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func New(remote Remote, opts ...Option) *Orchestrator {
	o := &Orchestrator{remote: remote, delay: defaultFallbackDelay, logger: logging.Default}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate always returns a populated idea. Remote ideas are stored server-side;
// fallback ideas are not stored anywhere.
func (o *Orchestrator) Generate(ctx context.Context, answers models.FormAnswers) models.StartupIdea {
	idea, err := o.remote.GenerateIdea(ctx, answers)
	if err == nil && idea != nil {
		idea.Normalize()
		return *idea
	}
	if err == nil {
		err = client.ErrMalformedResponse
	}

	o.logger.WithError(err).Warn("Remote generation failed; using fallback idea", map[string]interface{}{
		"kind": failureKind(err),
	})
	o.wait(ctx)
	return Fallback(answers)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, client.ErrAuthRequired):
		return "auth_required"
	case errors.Is(err, client.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, client.ErrUpstream):
		return "upstream"
	case errors.Is(err, client.ErrStore):
		return "store"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "unknown"
	}
}

func (o *Orchestrator) wait(ctx context.Context) {
	if o.delay <= 0 {
		return
	}
	timer := time.NewTimer(o.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
