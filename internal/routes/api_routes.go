package routes

import (
	"openfleet/fleetkeeper/internal/api"
	"openfleet/fleetkeeper/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, signingSecret []byte) {

	transfer := deps.Services.Transfer
	fleet := deps.Services.Fleet
	signer := deps.Services.Signer

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.RateLimitMiddleware)

		// Presigned downloads carry their own auth in the token.
		if signer != nil {
			v1.Get("/fleet/export/download", api.DownloadArchiveHandler(signer, transfer.ExportDir()))
		}

		// Everything else requires a JWT or API key.
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Repo.UserGorm, &deps.Repo.Keys, signingSecret))

			authed.Get("/vehicles", api.ListVehiclesHandler(fleet))
			authed.Post("/vehicles", api.CreateVehicleHandler(fleet))
			authed.Get("/vehicles/{vehicle_id}", api.GetVehicleHandler(fleet))
			authed.Delete("/vehicles/{vehicle_id}", api.DeleteVehicleHandler(fleet))

			authed.Post("/fleet/import", api.ImportHandler(transfer))
			authed.Post("/fleet/import/archive", api.ImportArchiveHandler(transfer))
			authed.Get("/fleet/export", api.ExportHandler(transfer, signer))
			authed.Get("/fleet/stats", api.FleetStatsHandler(deps.Services.Stats))
			authed.Get("/imports/history", api.ImportHistoryHandler(deps.Repo.History))

			// Owner-level destructive operation kept behind the admin gate.
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())
				admin.Delete("/fleet", api.PurgeFleetHandler(fleet))
			})
		})
	})
}
