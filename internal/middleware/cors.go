package middleware

import "net/http"

const corsAllowedHeaders = "authorization, x-client-info, apikey, content-type"

// CORS opens the API to browser clients on any origin. Preflight requests are
// answered here and never reach the wrapped handler.
type CORS struct {
	methods string
}

func NewCORS() *CORS {
	return &CORS{methods: "GET, POST, DELETE, OPTIONS"}
}

func (c *CORS) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		w.Header().Set("Access-Control-Allow-Methods", c.methods)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
