package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/stafftrack/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	clockHandler ClockHandler,
	reportHandler ReportHandler,
	userHandler UserHandler,
	teamHandler TeamHandler,
	syncHandler SyncHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/clock", func(r chi.Router) {
				r.Post("/", clockHandler.Action)
				r.Get("/me", clockHandler.MyRecords)
			})

			r.Get("/users/me", userHandler.Me)
			r.Get("/reports/me", reportHandler.MySummary)

			// Managers and admins
			r.Group(func(r chi.Router) {
				r.Use(middleware.ManagerOnly)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/summary", reportHandler.Summary)
					r.Get("/users/{id}/daily", reportHandler.UserDaily)
					r.Get("/users/{id}/weekly", reportHandler.UserWeekly)
				})

				r.Get("/users", userHandler.List)
				r.Get("/users/{id}", userHandler.Get)

				r.Route("/teams", func(r chi.Router) {
					r.Get("/", teamHandler.List)
					r.Get("/{id}", teamHandler.Get)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Put("/users/{id}/schedule", userHandler.UpdateSchedule)

				r.Post("/teams", teamHandler.Create)
				r.Put("/teams/{id}", teamHandler.Update)
				r.Delete("/teams/{id}", teamHandler.Delete)

				r.Post("/sync", syncHandler.Trigger)
				r.Get("/sync/status", syncHandler.Status)
			})
		})
	})
	return r
}
