package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"openpilotlog/logbook/internal/api"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/middleware"
)

// RegisterRoutes builds the HTTP handler for the logbook server.
// gatherer backs the /metrics endpoint; pass prometheus.DefaultGatherer in
// the server.
func RegisterRoutes(deps *api.Dependencies, gatherer prometheus.Gatherer, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(middleware.Logging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	handlers := api.NewHandlers(deps)

	r.Get("/healthCheck", handlers.HealthCheckHandler(upSince))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	limiter := middleware.NewRateLimiter(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst, "127.0.0.1", "::1")
	RegisterAPIRoutes(r, handlers, deps, limiter)

	logging.Info("Router initialized",
		"auth_enabled", deps.Tokens != nil,
		"rate_limit_rps", deps.Config.RateLimitRPS,
	)
	return r
}
