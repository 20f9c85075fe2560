package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/HammerMeetNail/microstartup/internal/handlers"
	"github.com/HammerMeetNail/microstartup/internal/models"
)

type TokenVerifier interface {
	Verify(token string) (*models.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	anonKey  string
}

func NewAuthMiddleware(verifier TokenVerifier, anonKey string) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, anonKey: anonKey}
}

// RequireAPIKey rejects requests whose apikey header is not the project's anon key.
func (m *AuthMiddleware) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("apikey")
		if m.anonKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.anonKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate puts the bearer token's user in the context when the token verifies.
// It does not reject anonymous requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.verifier.Verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetUserInContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects unauthenticated requests with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handlers.GetUserFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
