package api

import (
	"net/http"

	appcontext "openfleet/fleetkeeper/internal/context"
	"openfleet/fleetkeeper/internal/db/repositories"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/models/entities"
	"openfleet/fleetkeeper/internal/services"
)

// FleetStatsHandler handles GET /api/v1/fleet/stats. Administrators can
// request system-wide aggregates with ?all=true.
func FleetStatsHandler(stats *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var result *entities.FleetStats
		var err error
		if claims.IsAdmin() && r.URL.Query().Get("all") == "true" {
			result, err = stats.GetAll(r.Context())
		} else {
			result, err = stats.GetByOwner(r.Context(), claims.UserID())
		}
		if err != nil {
			logging.Error("Failed to load fleet stats", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, result)
	}
}

// ImportHistoryHandler handles GET /api/v1/imports/history.
func ImportHistoryHandler(history *repositories.ImportHistoryRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		entries, err := history.ListByOwner(r.Context(), claims.UserID(), 50)
		if err != nil {
			logging.Error("Failed to load import history", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &entries)
	}
}
