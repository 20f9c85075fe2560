package handlers

import (
	"context"
	"net/http"
	"time"
)

type HealthChecker interface {
	Health(ctx context.Context) error
}

// ProviderStatus reports whether idea generation has a provider to call.
type ProviderStatus interface {
	Configured() bool
}

type HealthHandler struct {
	db       HealthChecker
	redis    HealthChecker
	provider ProviderStatus
}

func NewHealthHandler(db, redis HealthChecker, provider ProviderStatus) *HealthHandler {
	return &HealthHandler{
		db:       db,
		redis:    redis,
		provider: provider,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp string            `json:"timestamp"`
}

// Health reports each dependency. A missing provider key is reported but does not
// make the service unhealthy; generate calls fail on their own.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	for name, checker := range map[string]HealthChecker{"postgres": h.db, "redis": h.redis} {
		if err := checker.Health(ctx); err != nil {
			response.Status = "unhealthy"
			response.Checks[name] = "unhealthy: " + err.Error()
		} else {
			response.Checks[name] = "healthy"
		}
	}

	if h.provider != nil {
		if h.provider.Configured() {
			response.Checks["gemini"] = "configured"
		} else {
			response.Checks["gemini"] = "not configured"
		}
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbErr := h.db.Health(ctx)
	redisErr := h.redis.Health(ctx)

	if dbErr != nil || redisErr != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
