package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HammerMeetNail/microstartup/internal/logging"
)

func TestRequestLogger_LogsOutcomeAndPropagatesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New().SetOutput(&buf)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("inside handler")
		writeError(w, http.StatusNotFound, "Idea not found")
	})

	req := httptest.NewRequest(http.MethodGet, "/rest/v1/startup_ideas/abc", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	NewRequestLogger(logger).Apply(handler).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var inner, outer logging.LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &inner); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &outer); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}

	if inner.Fields["request_id"] != "req-123" {
		t.Errorf("handler log should carry request id, got %v", inner.Fields["request_id"])
	}
	if outer.Level != "WARN" {
		t.Errorf("expected WARN for 404, got %v", outer.Level)
	}
	if outer.Fields["status"] != float64(http.StatusNotFound) {
		t.Errorf("expected status 404, got %v", outer.Fields["status"])
	}
	if outer.Fields["path"] != "/rest/v1/startup_ideas/abc" {
		t.Errorf("unexpected path %v", outer.Fields["path"])
	}
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	NewRequestLogger(logging.New().SetOutput(&bytes.Buffer{})).Apply(okHandler()).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request id")
	}
}
