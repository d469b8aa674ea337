package routes

import (
	"github.com/go-chi/chi/v5"

	"openpilotlog/logbook/internal/api"
	"openpilotlog/logbook/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)
		v1.Use(middleware.AuthMiddleware(deps.Tokens)) // all routes must carry a bearer token when auth is enabled

		// Stateless calculations
		v1.Get("/block-time", handlers.BlockTimeHandler())
		v1.Post("/night-time", handlers.NightTimeHandler())
		v1.Get("/distance", handlers.DistanceHandler())

		v1.Get("/airports/{code}", handlers.GetAirportHandler())
		v1.Get("/airports/{code}/daylight", handlers.AirportDaylightHandler())

		v1.Route("/flights", func(flights chi.Router) {
			flights.Post("/", handlers.CreateFlightHandler())
			flights.Post("/{id}/night-time", handlers.UpdateFlightNightTimeHandler())
			flights.Post("/{id}/night-time/enqueue", handlers.EnqueueFlightNightTimeHandler())

			flights.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())
				admin.Post("/night-time/recalculate", handlers.RecalculateAllHandler())
			})
		})

		v1.Route("/statistics", func(stats chi.Router) {
			stats.Get("/totals", handlers.TotalsHandler())
			stats.Get("/ftl", handlers.FTLHandler())
			stats.Get("/takeoff-landing", handlers.TakeoffLandingHandler())
		})

		v1.Get("/currencies", handlers.ListCurrenciesHandler())
		v1.Put("/currencies/{id}", handlers.UpdateCurrencyHandler())

		// Admin-only group
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.IsAdminMiddleware())
			admin.Use(middleware.InFlightMiddleware(deps.Metrics, "admin"))

			admin.Post("/admin/airports/sync", handlers.SyncAirportsHandler())
		})
	})
}
