package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/server/auth"
)

func getTokenFromAuthHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}
	return strings.TrimPrefix(authHeader, prefix)
}

// authHandlerFunc receives the authenticated user's ID alongside the request.
type authHandlerFunc func(w http.ResponseWriter, r *http.Request, userID string)

// requireAuth resolves the bearer token to a user ID before invoking next.
// Missing, malformed, and expired tokens all end the request with 401.
func (h *Handler) requireAuth(next authHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := getTokenFromAuthHeader(r)
		if token == "" {
			h.sendError(w, r, http.StatusUnauthorized, codeUnauthorized,
				"Unauthorized", "A bearer token is required.")
			return
		}
		userID, err := auth.GetUserIDFromToken(token, h.jwtSecret)
		if err != nil {
			detail := "The provided token is not valid."
			if errors.Is(err, common.ErrTokenExpired) {
				detail = "The provided token has expired."
			}
			h.sendError(w, r, http.StatusUnauthorized, codeUnauthorized,
				"Unauthorized", detail)
			return
		}
		next(w, r, userID)
	}
}
