package api

import (
	"encoding/json"
	"net/http"

	appcontext "openfleet/fleetkeeper/internal/context"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/models/dtos"
	"openfleet/fleetkeeper/internal/services"

	"github.com/go-chi/chi/v5"
)

// ListVehiclesHandler handles GET /api/v1/vehicles
func ListVehiclesHandler(fleet *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		vehicles, err := fleet.ListVehicles(r.Context(), claims.UserID())
		if err != nil {
			logging.Error("Failed to list vehicles", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &vehicles)
	}
}

// GetVehicleHandler handles GET /api/v1/vehicles/{vehicle_id}
func GetVehicleHandler(fleet *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		vehicleID := chi.URLParam(r, "vehicle_id")
		if vehicleID == "" {
			respondWithError(w, http.StatusBadRequest, "Missing vehicle id")
			return
		}

		vehicle, err := fleet.GetVehicle(r.Context(), vehicleID)
		if err != nil {
			logging.Error("Failed to load vehicle", "vehicle_id", vehicleID, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if vehicle == nil || (vehicle.OwnerID != claims.UserID() && !claims.IsAdmin()) {
			respondWithError(w, http.StatusNotFound, "Vehicle not found")
			return
		}

		respondWithSuccess(w, http.StatusOK, vehicle)
	}
}

// CreateVehicleHandler handles POST /api/v1/vehicles
func CreateVehicleHandler(fleet *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var req dtos.CreateVehicleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
			return
		}

		vehicle, err := fleet.CreateVehicle(r.Context(), claims.UserID(), req)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusCreated, vehicle)
	}
}

// DeleteVehicleHandler handles DELETE /api/v1/vehicles/{vehicle_id}
func DeleteVehicleHandler(fleet *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		vehicleID := chi.URLParam(r, "vehicle_id")
		vehicle, err := fleet.GetVehicle(r.Context(), vehicleID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if vehicle == nil || (vehicle.OwnerID != claims.UserID() && !claims.IsAdmin()) {
			respondWithError(w, http.StatusNotFound, "Vehicle not found")
			return
		}

		if err := fleet.DeleteVehicle(r.Context(), vehicle.OwnerID, vehicleID); err != nil {
			logging.Error("Failed to delete vehicle", "vehicle_id", vehicleID, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		msg := "Vehicle deleted"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}

// PurgeFleetHandler handles DELETE /api/v1/fleet. It removes every vehicle
// the caller owns along with the full record graphs.
func PurgeFleetHandler(fleet *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		deleted, err := fleet.PurgeFleet(r.Context(), claims.UserID())
		if err != nil {
			logging.Error("Fleet purge failed", "owner_id", claims.UserID(), "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result := map[string]int{"vehiclesDeleted": deleted}
		respondWithSuccess(w, http.StatusOK, &result)
	}
}
