/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This is
  the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the form frontend

ROUTE GROUPS:
  /api/login, /api/logout     Session establishment and teardown
  /api/me, /api/password      Current employee
  /api/requests/*             Absence requests (submit, list, cancel)
  /api/admin/*                Roster editing, ceiling, accrual state

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)

			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
			r.Post("/password", h.ChangeSecret)

			r.Route("/requests", func(r chi.Router) {
				r.Get("/", h.ListRequests)
				r.Post("/", h.SubmitRequest)
				r.Delete("/{id}", h.CancelRequest)
			})

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(h.RequireAdmin)

				r.Get("/roster", h.ListRoster)
				r.Post("/employees", h.CreateEmployee)
				r.Put("/employees/{name}", h.UpdateEmployee)
				r.Delete("/employees/{name}", h.TerminateEmployee)
				r.Get("/state", h.GetState)
				r.Put("/ceiling", h.UpdateCeiling)
			})
		})
	})

	return r
}
