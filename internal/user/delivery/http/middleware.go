package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/auth"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// in the request context
func AuthMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, r, apperrors.Unauthorized("UNAUTHORIZED", "Missing authorization header"))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondError(w, r, apperrors.Unauthorized("UNAUTHORIZED", "Invalid authorization header"))
				return
			}

			claims, err := tokens.ValidateAccessToken(parts[1])
			if err != nil {
				respondError(w, r, apperrors.Unauthorized("UNAUTHORIZED", "Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok
}

// RoleFromContext returns the authenticated user's role, if any
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
