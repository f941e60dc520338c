package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"openfleet/fleetkeeper/internal/api"
	"openfleet/fleetkeeper/internal/db"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/metrics"
	"openfleet/fleetkeeper/internal/middleware"
	"openfleet/fleetkeeper/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	cfg := api.ConfigFromEnv()
	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Background cleanup of expired exports and orphaned scratch dirs
	sweeper := workers.NewSweeper(cfg.ExportDir, cfg.ScratchDir)
	go func() {
		if err := sweeper.Start(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
			logging.Error("Sweeper stopped", "error", err.Error())
		}
	}()

	RegisterAPIRoutes(r, deps, cfg.SigningKey)

	return r
}
