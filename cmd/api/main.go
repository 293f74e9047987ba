package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/luisfsill/Ponto-Digital/internal/config"
	appHTTP "github.com/luisfsill/Ponto-Digital/internal/handler/http"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/cron"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/database"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/jwt"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/oauth"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/sse"
	"github.com/luisfsill/Ponto-Digital/internal/repository/postgresql"
	serviceAuth "github.com/luisfsill/Ponto-Digital/internal/service/auth"
	serviceGeofence "github.com/luisfsill/Ponto-Digital/internal/service/geofence"
	serviceRecord "github.com/luisfsill/Ponto-Digital/internal/service/record"
	serviceReport "github.com/luisfsill/Ponto-Digital/internal/service/report"
	serviceUser "github.com/luisfsill/Ponto-Digital/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-digital"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	geofenceRepo := postgresql.NewGeofenceRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	hub := sse.NewHub()

	userService := serviceUser.NewUserService(userRepo, deviceRepo, cfg.Ponto.UseUserSchedule, cfg.Ponto.ExpectedMinutes)
	geofenceService := serviceGeofence.NewGeofenceService(geofenceRepo, cfg.App.PublicURL)
	recordService := serviceRecord.NewRecordService(recordRepo, userRepo, userService, geofenceService, hub, cfg.Ponto.Location)
	reportService := serviceReport.NewReportService(recordRepo, userService, cfg.Ponto.Policy())
	authService := serviceAuth.NewAuthService(userRepo, refreshTokenRepo, JWTService)

	scheduler := cron.NewScheduler()
	cron.NewAuthJobs(JWTService, refreshTokenRepo).RegisterJobs(scheduler, cfg.Ponto.CleanupInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: logger, AllowedOrigins: cfg.App.CORSAllowedOrigins},
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL, cfg.IsProduction()),
		appHTTP.NewUserHandler(userService),
		appHTTP.NewGeofenceHandler(geofenceService),
		appHTTP.NewRecordHandler(recordService),
		appHTTP.NewReportHandler(reportService),
		appHTTP.NewEventsHandler(JWTService, hub),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the signal context instead of holding Shutdown open.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", cfg.Ponto.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
