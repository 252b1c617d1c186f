package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

// UserKey is the context key for the signed-in user
const UserKey contextKey = "identity_user"

// Middleware attaches the bearer token's user to the request context. Requests without
// a valid token continue signed out; gating is left to the handlers.
func Middleware(verifier *TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			user, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.WarnContext(r.Context(), "ignoring invalid bearer token", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user set by Middleware, or nil.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(UserKey).(*User)
	return user
}
