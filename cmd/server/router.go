package main

import (
	"net/http"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/api"
	apiMiddleware "github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/api/middleware"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates the router with middleware and every route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(observability.HTTPMiddleware)
	r.Use(apiMiddleware.CORS(app.config.Server.FrontendURL))

	activityHandler := api.NewActivityHandler(app.activityService, app.notificationsService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check", api.HealthCheck(app.health))

		r.Get("/activities/home", activityHandler.HomeActivities)
		r.Get("/activities/notifications", activityHandler.NotificationsActivities)
		r.Get("/activities/{activity_uuid}", activityHandler.ShowActivity)
		r.Get("/users/{handle}/activities/count", activityHandler.CountActivities)

		r.Group(func(r chi.Router) {
			if app.jwtService != nil {
				r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
			}
			r.Post("/activities", activityHandler.CreateActivity)
		})
	})

	if app.metrics != nil {
		r.Handle("/metrics", app.metrics.Handler())
	}

	return r
}
