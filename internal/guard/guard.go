// Package guard implements the shared-secret gate applied per route.
// It is deliberately stateless: one configured secret, one equality
// check, no sessions.
package guard

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

type Service struct {
	secret string
}

// New returns a guard for the given secret. An empty secret disables
// the gate, which keeps first-time setup testable before any secret
// has been provisioned.
func New(secret string) *Service {
	return &Service{secret: secret}
}

// Check reports whether a supplied value is admitted.
func (s *Service) Check(supplied string) bool {
	if s.secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(s.secret)) == 1
}

// RequireHeader gates a route on a secret carried in a request header.
func (s *Service) RequireHeader(name string) func(http.Handler) http.Handler {
	return s.require(func(r *http.Request) string {
		return r.Header.Get(name)
	})
}

// RequireQuery gates a route on a secret carried in a query parameter.
func (s *Service) RequireQuery(param string) func(http.Handler) http.Handler {
	return s.require(func(r *http.Request) string {
		return r.URL.Query().Get(param)
	})
}

// RequireHeaderOrQuery accepts the secret from either location. Tag
// writing tools differ in whether they can set headers, so the tap
// route takes both.
func (s *Service) RequireHeaderOrQuery(header, param string) func(http.Handler) http.Handler {
	return s.require(func(r *http.Request) string {
		if v := r.Header.Get(header); v != "" {
			return v
		}
		return r.URL.Query().Get(param)
	})
}

func (s *Service) require(extract func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.Check(extract(r)) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
