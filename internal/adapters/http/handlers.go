package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/application"
)

// Handler is the HTTP adapter entrypoint for the auth and lesson use cases.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

// authMiddleware is the bearer-token gate. It decodes and validates the
// token signature and expiry only; it performs no store lookup, so a token
// stays good for its full lifetime regardless of later account changes.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "NO_TOKEN", "missing bearer token")
			return
		}

		claims, err := h.service.DecodeToken(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyIdentityID, claims.IdentityID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parseIDParam(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
