/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests

ROUTE GROUPS:
  /api/deltas/*   Named delta management and operations
  /api/apply      Inline apply
  /api/diff       Two-instant diff
  /api/convert    Inline conversion
  /metrics        Prometheus scrape endpoint

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/deltas", func(r chi.Router) {
			r.Get("/", h.ListDeltas)
			r.Post("/", h.CreateDelta)
			r.Get("/{id}", h.GetDelta)
			r.Delete("/{id}", h.DeleteDelta)
			r.Post("/{id}/apply", h.ApplyDelta)
			r.Post("/{id}/convert", h.ConvertDelta)
		})

		r.Post("/apply", h.ApplyInline)
		r.Post("/diff", h.DiffDates)
		r.Post("/convert", h.ConvertInline)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
