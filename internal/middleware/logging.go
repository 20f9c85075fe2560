package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/logging"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// RequestLogger tags each request with an ID, exposes a request-scoped logger
// through the context and logs the outcome with timing.
type RequestLogger struct {
	logger *logging.Logger
}

func NewRequestLogger(logger *logging.Logger) *RequestLogger {
	if logger == nil {
		logger = logging.Default
	}
	return &RequestLogger{logger: logger}
}

func (l *RequestLogger) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		reqLogger := l.logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		r = r.WithContext(logging.NewContext(r.Context(), reqLogger))

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		fields := map[string]interface{}{
			"status":      recorder.statusCode,
			"size":        recorder.size,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": GetClientIP(r),
			"user_agent":  r.UserAgent(),
		}
		if info := r.Header.Get("x-client-info"); info != "" {
			fields["client_info"] = info
		}

		switch {
		case recorder.statusCode >= 500:
			reqLogger.Error("HTTP request", fields)
		case recorder.statusCode >= 400:
			reqLogger.Warn("HTTP request", fields)
		default:
			reqLogger.Info("HTTP request", fields)
		}
	})
}
