package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/api"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/config"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/metrics"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/observability"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/postgres"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/service"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/service/auth"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	pool      *postgres.PgxPool
	health    api.Pinger
	metrics   *metrics.Metrics
	telemetry *observability.Provider

	// jwtService is nil when authentication is disabled.
	jwtService auth.JWTService

	activityService      service.ActivityService
	notificationsService service.NotificationsService
}

// newApplication builds every dependency from cfg. The pool is opened and
// pinged here, so a bad connection string fails startup.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	var err error
	app.telemetry, err = observability.Init(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app.pool, err = postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}
	app.health = app.pool
	app.metrics.RegisterPoolStats(app.pool.Stats)

	templates := postgres.NewTemplateStore(cfg.Database.TemplateDir, logger, app.metrics)
	gateway := postgres.NewDb(app.pool, logger, app.metrics)

	app.activityService, err = service.NewActivityService(gateway, templates, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create activity service: %w", err)
	}
	app.notificationsService = service.NewNotificationsService(nil)

	if cfg.Auth.Enabled() {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("bearer token authentication enabled")
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the pool and flushes spans. It is safe to call on a
// partially built application.
func (app *application) cleanup() {
	if app.pool != nil {
		app.pool.Close()
		app.pool = nil
	}

	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(context.Background()); err != nil {
			app.logger.Error("failed to flush telemetry", "error", err)
		}
		app.telemetry = nil
	}

	app.logger.Info("application shutdown completed")
}
