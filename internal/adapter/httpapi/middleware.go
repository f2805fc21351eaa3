package httpapi

import (
	"net/http"
	"strings"
)

// BearerAuth returns a middleware that validates the Authorization header
// against the configured API token.
// If the token is missing or invalid, it responds 401 Unauthorized.
// If valid, it calls the next handler with the original request.
func BearerAuth(validToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token != validToken {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
