package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterConfig carries the HTTP-level settings the middleware stack needs.
type RouterConfig struct {
	AllowedOrigin string
}

// NewRouter registers routes and the middleware stack. The bearer gate wraps
// only the protected group; register, login and OTP verification stay open.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(corsMiddleware(cfg.AllowedOrigin))
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/auth/v1", func(r chi.Router) {
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
		r.Post("/otp/verify", handler.verifyOTP)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/password/change", handler.changePassword)
			r.Get("/me", handler.me)
		})
	})

	r.Route("/lessons/v1", func(r chi.Router) {
		r.Use(handler.authMiddleware)
		r.Get("/", handler.listLessons)
		r.Post("/", handler.createLesson)
		r.Get("/{lesson_id}", handler.getLesson)
		r.Put("/{lesson_id}", handler.updateLesson)
		r.Delete("/{lesson_id}", handler.deleteLesson)
		r.Post("/{lesson_id}/complete", handler.completeLesson)
	})

	return r
}
