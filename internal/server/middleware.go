// internal/server/middleware.go
package server

import (
	"net/http"
	"strings"
)

// sessionMiddleware guards mutation endpoints with the bearer token issued
// after a successful PIN setup or verify.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeError(w, http.StatusUnauthorized, "no_authorization", "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			s.writeError(w, http.StatusUnauthorized, "invalid_authorization", "Invalid authorization header format")
			return
		}

		if err := s.sessions.Validate(parts[1]); err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired session")
			return
		}

		next.ServeHTTP(w, r)
	})
}
