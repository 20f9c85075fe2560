package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/microstartup/internal/handlers"
	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/metrics"
)

// RateLimiter is a fixed-window counter kept in Redis.
type RateLimiter struct {
	redis      *redis.Client
	limit      int64
	window     time.Duration
	prefix     string
	keyFunc    func(r *http.Request) string
	failClosed bool
}

// NewRateLimiter builds a limiter allowing limit requests per window for each key.
// A nil keyFunc keys by client IP. With failClosed, Redis errors reject the request.
func NewRateLimiter(redisClient *redis.Client, limit int64, window time.Duration, prefix string, keyFunc func(r *http.Request) string, failClosed bool) *RateLimiter {
	if keyFunc == nil {
		keyFunc = GetClientIP
	}
	return &RateLimiter{
		redis:      redisClient,
		limit:      limit,
		window:     window,
		prefix:     prefix,
		keyFunc:    keyFunc,
		failClosed: failClosed,
	}
}

// NewGenerateRateLimiter limits provider calls per signed-in user.
func NewGenerateRateLimiter(redisClient *redis.Client, perHour int64) *RateLimiter {
	return NewRateLimiter(redisClient, perHour, time.Hour, "ratelimit:generate:", UserOrIPKey, true)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.redis == nil || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		id := rl.keyFunc(r)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, resetTime, err := rl.isAllowed(r.Context(), rl.prefix+id)
		if err != nil {
			logging.FromContext(r.Context()).WithError(err).Error("Rate limiter unavailable", map[string]interface{}{
				"limiter": rl.prefix,
			})
			if rl.failClosed {
				writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime))

		if !allowed {
			metrics.RateLimitRejected.WithLabelValues(strings.TrimSuffix(rl.prefix, ":")).Inc()
			retryAfter := resetTime - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) isAllowed(ctx context.Context, key string) (allowed bool, remaining int64, resetTime int64, err error) {
	windowEnd := time.Now().Truncate(rl.window).Add(rl.window)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, windowEnd.Unix(), err
	}

	count := incr.Val()
	remaining = rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.limit, remaining, windowEnd.Unix(), nil
}

// UserOrIPKey keys by authenticated user, falling back to client IP.
func UserOrIPKey(r *http.Request) string {
	if user := handlers.GetUserFromContext(r.Context()); user != nil {
		return "user:" + user.ID.String()
	}
	return "ip:" + GetClientIP(r)
}

func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if host, _, err := net.SplitHostPort(first); err == nil {
			return host
		}
		return first
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
