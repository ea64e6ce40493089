// Package session authenticates requests and carries the user context
// through the request lifecycle.
package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

type contextKey struct{}

// Verifier turns a bearer token into a user context.
type Verifier interface {
	Verify(token string) (auth.UserContext, error)
}

// Authenticator rejects requests without a valid bearer token and stores
// the user context for handlers downstream.
func Authenticator(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			uc, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, uc)))
		})
	}
}

// FromContext returns the user context stored by Authenticator.
func FromContext(ctx context.Context) (auth.UserContext, bool) {
	uc, ok := ctx.Value(contextKey{}).(auth.UserContext)

	return uc, ok
}
