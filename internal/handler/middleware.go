package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/mikkelsv/taskvault/internal/service"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// UserIDFromContext extracts the authenticated caller's user id from
// the request context. Returns "" if the request is unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDContextKey).(string)
	return id
}

// RequireAuth protects routes behind bearer-token authentication. It
// reads the Authorization header, verifies the token signature and
// expiry, and injects the embedded user id into the request context.
// No database lookup happens here: token validity is decided by the
// signature alone.
func RequireAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Could not validate credentials.")
				return
			}

			userID, err := auth.VerifyToken(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Could not validate credentials.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
