package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HammerMeetNail/microstartup/internal/handlers"
	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/middleware"
)

type routerDeps struct {
	health   *handlers.HealthHandler
	generate *handlers.GenerateHandler
	ideas    *handlers.IdeasHandler
	auth     *middleware.AuthMiddleware
	limiter  *middleware.RateLimiter // nil disables generate rate limiting
	registry *prometheus.Registry
	logger   *logging.Logger
	secure   bool
}

func newRouter(d routerDeps) http.Handler {
	cors := middleware.NewCORS()

	// api wraps a client-facing endpoint. CORS sits outside the key check so
	// preflights never need credentials.
	api := func(h http.Handler) http.Handler {
		return cors.Apply(d.auth.RequireAPIKey(d.auth.Authenticate(h)))
	}

	var generate http.Handler = http.HandlerFunc(d.generate.Generate)
	if d.limiter != nil {
		generate = d.limiter.Middleware(generate)
	}
	list := d.auth.RequireAuth(http.HandlerFunc(d.ideas.List))
	get := d.auth.RequireAuth(http.HandlerFunc(d.ideas.Get))
	del := d.auth.RequireAuth(http.HandlerFunc(d.ideas.Delete))

	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", d.health.Health)
	mux.HandleFunc("GET /ready", d.health.Ready)
	mux.HandleFunc("GET /live", d.health.Live)
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	// Generation function
	mux.Handle("POST /functions/v1/generate-startup-idea", api(generate))
	mux.Handle("OPTIONS /functions/v1/generate-startup-idea", api(generate))

	// Saved ideas
	mux.Handle("GET /rest/v1/startup_ideas", api(list))
	mux.Handle("OPTIONS /rest/v1/startup_ideas", api(list))
	mux.Handle("GET /rest/v1/startup_ideas/{id}", api(get))
	mux.Handle("DELETE /rest/v1/startup_ideas/{id}", api(del))
	mux.Handle("OPTIONS /rest/v1/startup_ideas/{id}", api(get))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = middleware.NewCompress().Apply(handler)
	handler = middleware.NewSecurityHeaders(d.secure).Apply(handler)
	handler = middleware.NewRequestLogger(d.logger).Apply(handler)
	return handler
}
