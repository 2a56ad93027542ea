package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// OAuth2 account-linking surface. The paths are dictated by the
	// console configuration on the Google side, so they live at the root
	// rather than under /api/v1.
	r.Get("/authorize", s.handleAuthorizeForm)
	r.Post("/authorize", s.handleAuthorizeSubmit)
	r.Post("/token", s.handleToken)

	// Smart home fulfillment endpoint
	r.Post("/smarthome", s.handleSmartHome)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
