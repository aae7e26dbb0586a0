package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/interviai/backend/pkg/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier validates a bearer token and returns the user it identifies.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Auth requires a valid Authorization bearer token and stores the caller's
// user id in the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				utils.RespondError(w, http.StatusUnauthorized, "missing token")
				return
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by Auth, if any.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
