package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/luisfsill/Ponto-Digital/internal/handler/http/middleware"
	"github.com/luisfsill/Ponto-Digital/internal/handler/http/response"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/jwt"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	geofenceHandler GeofenceHandler,
	recordHandler RecordHandler,
	reportHandler ReportHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		// Employee facing, identified by device id
		r.Post("/ponto", recordHandler.ClockIn)
		r.Post("/devices/bind", userHandler.BindDevice)

		r.Get("/events/stream", eventsHandler.Stream)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Get("/oauth/google", authHandler.LoginWithGoogle)
			})
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.AdminOnly)

			r.Post("/auth/sse-token", authHandler.SSEToken)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Put("/", userHandler.Update)
					r.Delete("/", userHandler.Delete)
					r.Patch("/devices/{deviceID}", userHandler.RenameDevice)
					r.Delete("/devices/{deviceID}", userHandler.RemoveDevice)
				})
			})

			r.Route("/geofences", func(r chi.Router) {
				r.Get("/", geofenceHandler.List)
				r.Post("/", geofenceHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", geofenceHandler.Get)
					r.Put("/", geofenceHandler.Update)
					r.Delete("/", geofenceHandler.Delete)
					r.Patch("/active", geofenceHandler.SetActive)
					r.Get("/checkin-url", geofenceHandler.CheckInURL)
				})
			})

			r.Route("/records", func(r chi.Router) {
				r.Get("/", recordHandler.List)
				r.Get("/export", recordHandler.Export)
				r.Post("/import", recordHandler.Import)
				r.Post("/bulk-delete", recordHandler.BulkDelete)
				r.Delete("/{id}", recordHandler.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", reportHandler.Daily)
				r.Get("/daily/export", reportHandler.ExportDaily)
				r.Get("/bank-of-hours", reportHandler.BankOfHours)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
