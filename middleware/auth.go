package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/services"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticator validates the bearer token on incoming requests, resolves
// the acting user and stores it in the request context. Requests without a
// valid token for an active account are rejected with 401.
type Authenticator struct {
	tokens *services.TokenService
	users  services.UserService
}

func NewAuthenticator(tokens *services.TokenService, users services.UserService) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
	}
}

func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		username, err := a.tokens.Validate(token)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				unauthorized(w, "token has expired")
				return
			}
			unauthorized(w, "invalid token")
			return
		}

		user, err := a.users.GetByUsername(r.Context(), username)
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}
		if !user.IsActive {
			unauthorized(w, "account is inactive")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the acting user placed by RequireUser, or nil for
// unauthenticated requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error": "` + message + `"}`))
}
