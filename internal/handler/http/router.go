package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/config"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         AuthHandler
	Company      CompanyHandler
	User         UserHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Plan         PlanHandler
	Report       ReportHandler
	Notification NotificationHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, users middleware.UserLookup, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "geoshift"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// The stream authenticates with a short-lived query token.
		r.Get("/user/events", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/user", func(r chi.Router) {
				r.Post("/events/token", h.Auth.SSEToken)
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/attendance", h.Attendance.GetMyAttendance)
				r.Get("/profile", h.User.GetProfile)
				r.Put("/profile", h.User.UpdateProfile)
				r.Get("/reminders", h.User.Reminders)
				r.Post("/passwords", h.User.ChangePassword)
				r.Post("/requests", h.Leave.Create)
				r.Get("/requests", h.Leave.ListMine)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
			})

			r.Route("/plans", func(r chi.Router) {
				r.Get("/", h.Plan.List)
				r.With(middleware.AdminOnly).Post("/", h.Plan.Create)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/companies", h.Company.Register)
				r.Post("/passwords", h.User.ChangePassword)

				// Everything else acts on the admin's company
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCompany(users))

					r.Get("/companies/my", h.Company.GetMy)
					r.Put("/companies/my/location", h.Company.UpdateLocation)

					r.Post("/users", h.User.Create)
					r.Get("/users", h.User.List)
					r.Get("/users/{id}", h.User.Get)
					r.Put("/users/{id}", h.User.Update)
					r.Delete("/users/{id}", h.User.Delete)

					r.Get("/requests", h.Leave.List)
					r.Get("/requests/{id}", h.Leave.Get)
					r.Patch("/requests/{id}/status", h.Leave.UpdateStatus)

					r.Get("/clock-in", h.Attendance.List)
					r.Get("/clock-in/{id}", h.Attendance.Get)

					r.Get("/dashboard-stats", h.Report.DashboardStats)
					r.Get("/attendance-summary", h.Report.AttendanceSummary)
					r.Get("/export-summary", h.Report.ExportSummary)
				})
			})
		})
	})
	return r
}
