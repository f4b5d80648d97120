package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hospital-workforce/internal/analytics"
	"github.com/frahmantamala/hospital-workforce/internal/auth"
	"github.com/frahmantamala/hospital-workforce/internal/department"
	"github.com/frahmantamala/hospital-workforce/internal/handover"
	"github.com/frahmantamala/hospital-workforce/internal/hospital"
	"github.com/frahmantamala/hospital-workforce/internal/leave"
	"github.com/frahmantamala/hospital-workforce/internal/patient"
	"github.com/frahmantamala/hospital-workforce/internal/shift"
	"github.com/frahmantamala/hospital-workforce/internal/swap"
	"github.com/frahmantamala/hospital-workforce/internal/task"
	"github.com/frahmantamala/hospital-workforce/internal/transport/middleware"
	"github.com/frahmantamala/hospital-workforce/internal/transport/swagger"
)

// Handlers collects every HTTP handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Hospital   *hospital.Handler
	Department *department.Handler
	Patient    *patient.Handler
	Task       *task.Handler
	Shift      *shift.Handler
	Leave      *leave.Handler
	Swap       *swap.Handler
	Handover   *handover.Handler
	Analytics  *analytics.Handler
}

// NewRouter builds the full route tree: public auth and health endpoints,
// then the authenticated /api/v1 surface.
func NewRouter(h Handlers, sqlDB *sql.DB, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.CORS)

	health := NewHealthHandler(sqlDB)
	r.Get("/ping", health.pingHandler)
	r.Get("/health", health.healthCheckHandler)
	r.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	r.Mount("/swagger", swagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.AuthMiddleware)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/users/me", h.Auth.Me)

			r.Route("/hospitals", func(r chi.Router) {
				r.Get("/", h.Hospital.List)
				r.Post("/", h.Hospital.Create)
				r.Get("/{id}", h.Hospital.Get)
				r.Put("/{id}", h.Hospital.Update)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Post("/", h.Department.Create)
				r.Get("/{id}", h.Department.Get)
				r.Put("/{id}", h.Department.Update)
			})

			r.Route("/patients", func(r chi.Router) {
				r.Get("/", h.Patient.List)
				r.Post("/", h.Patient.Create)
				r.Get("/{id}", h.Patient.Get)
				r.Put("/{id}", h.Patient.Update)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Get("/{id}", h.Task.Get)
				r.Put("/{id}", h.Task.Update)
				r.Get("/{id}/comments", h.Task.ListComments)
				r.Post("/{id}/comments", h.Task.AddComment)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Post("/", h.Shift.Create)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)
				r.Get("/{id}", h.Leave.Get)
				r.Put("/{id}", h.Leave.Transition)
			})

			r.Route("/swaps", func(r chi.Router) {
				r.Get("/", h.Swap.List)
				r.Post("/", h.Swap.Create)
				r.Get("/{id}", h.Swap.Get)
				r.Put("/{id}", h.Swap.Transition)
			})

			r.Route("/handovers", func(r chi.Router) {
				r.Get("/", h.Handover.List)
				r.Post("/", h.Handover.Create)
				r.Get("/{id}", h.Handover.Get)
				r.Put("/{id}", h.Handover.Update)
			})

			r.Get("/analytics/summary", h.Analytics.Summary)
		})
	})

	return r
}
