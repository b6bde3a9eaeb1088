package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// Client-facing Auth Gate messages.
const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
	MsgServerError  = "Server Error"
)

const bearerPrefix = "Bearer "

// Identity is the authenticated caller, produced by RequireAuth.
type Identity struct {
	UserID string
}

// AuthenticatedHandler is a handler that runs only for a verified caller.
type AuthenticatedHandler func(w http.ResponseWriter, r *http.Request, id Identity)

// RequireAuth validates the Bearer token and calls next with the caller's Identity.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(AuthenticatedHandler) http.HandlerFunc {
	return func(next AuthenticatedHandler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := strings.TrimSpace(r.Header.Get("Authorization"))
			// Header values arrive trimmed, so a bare "Bearer" is an empty token.
			if auth == "" || auth == strings.TrimSpace(bearerPrefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			if !strings.HasPrefix(auth, bearerPrefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}
			token := strings.TrimSpace(auth[len(bearerPrefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					h.WriteJSONError(w, http.StatusUnauthorized, MsgInvalidToken)
					return
				}
				logger.ErrorContext(r.Context(), "token verification failed", "error", err)
				h.WriteJSONError(w, http.StatusInternalServerError, MsgServerError)
				return
			}
			next(w, r, Identity{UserID: userID})
		}
	}
}
