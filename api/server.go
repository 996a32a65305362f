/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*      Employees, their entries and range queries
  /api/union/*          Service charges by union member id
  /api/schedules        Payment schedule descriptors
  /api/payroll/*        Totals, runs, archived runs, reports
  /api/history/*        Undo and redo
  /api/reset            Clear the system (undoable)

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

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
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/search", h.SearchEmployees)
			r.Get("/{id}", h.GetEmployee)
			r.Patch("/{id}", h.ChangeAttribute)
			r.Delete("/{id}", h.RemoveEmployee)
			r.Get("/{id}/attributes/{name}", h.GetAttribute)

			r.Post("/{id}/timecards", h.PostTimeCard)
			r.Delete("/{id}/timecards/{date}", h.RemoveTimeCard)
			r.Post("/{id}/sales", h.PostSale)
			r.Delete("/{id}/sales/{receipt}", h.RemoveSale)

			r.Get("/{id}/hours", h.GetHours)
			r.Get("/{id}/sales", h.GetSales)
			r.Get("/{id}/charges", h.GetCharges)
		})

		// Union routes
		r.Route("/union/{member}", func(r chi.Router) {
			r.Post("/charges", h.PostServiceCharge)
			r.Delete("/charges/{charge}", h.RemoveServiceCharge)
		})

		// Schedule routes
		r.Get("/schedules", h.ListSchedules)
		r.Post("/schedules", h.CreateSchedule)

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/total", h.TotalPayroll)
			r.Post("/runs", h.RunPayroll)
			r.Get("/runs", h.ListRuns)
			r.Get("/runs/{id}", h.GetRun)
			r.Get("/report.csv", h.ReportCSV)
			r.Get("/report.pdf", h.ReportPDF)
		})

		// History routes
		r.Post("/history/undo", h.Undo)
		r.Post("/history/redo", h.Redo)
		r.Post("/reset", h.Reset)
	})

	return r
}
