package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/obi/bookshelf-api/internal/api/respond"
	"github.com/obi/bookshelf-api/internal/domain"
	"github.com/obi/bookshelf-api/internal/service"
	"go.uber.org/zap"
)

type contextKey string

const userKey contextKey = "user"

// Auth gates a route group behind a bearer token. The token's subject is
// resolved back to a stored user, so a token for a deleted account is
// rejected even before expiry.
func Auth(authService *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "Invalid authorization header")
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				logger.Warn("token validation failed", zap.Error(err))
				unauthorized(w, "Invalid token")
				return
			}

			sub, ok := (*claims)["sub"].(string)
			if !ok {
				unauthorized(w, "Invalid token claims")
				return
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				unauthorized(w, "Invalid token claims")
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil {
				logger.Warn("token subject no longer resolves", zap.String("sub", sub))
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user attached by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	respond.Error(w, http.StatusUnauthorized, message)
}
