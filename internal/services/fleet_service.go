package services

import (
	"context"
	"fmt"
	"time"

	"openfleet/fleetkeeper/internal/common"
	"openfleet/fleetkeeper/internal/constants"
	"openfleet/fleetkeeper/internal/db/repositories"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/metrics"
	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"
	"openfleet/fleetkeeper/internal/pipeline"

	"gorm.io/gorm"
)

const vehicleListCacheTTL = 2 * time.Minute

// FleetService handles single-vehicle CRUD on top of the vehicle repository,
// with a short-lived cache in front of the list query.
type FleetService struct {
	db         *gorm.DB
	vehicles   *repositories.VehicleRepository
	cache      common.CacheInterface
	metricsReg *metrics.MetricsRegistry
}

func NewFleetService(db *gorm.DB, vehicles *repositories.VehicleRepository, cache common.CacheInterface) *FleetService {
	return &FleetService{db: db, vehicles: vehicles, cache: cache}
}

// WithMetrics attaches the metrics registry for cache hit/miss accounting.
func (svc *FleetService) WithMetrics(reg *metrics.MetricsRegistry) *FleetService {
	svc.metricsReg = reg
	return svc
}

// ListVehicles returns all vehicles owned by ownerID, cached per owner.
func (svc *FleetService) ListVehicles(ctx context.Context, ownerID string) ([]gormModels.Vehicle, error) {
	key := common.VehicleListCacheKey(string(constants.CachePrefixVehicleList), ownerID)

	if cached, found := svc.cache.Get(key); found {
		if vehicles, ok := cached.([]gormModels.Vehicle); ok {
			svc.observeCache(true)
			return vehicles, nil
		}
		// stale entry of an older shape
		svc.cache.Delete(key)
	}
	svc.observeCache(false)

	vehicles, err := svc.vehicles.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	svc.cache.Set(key, vehicles, vehicleListCacheTTL)
	return vehicles, nil
}

func (svc *FleetService) observeCache(hit bool) {
	if svc.metricsReg == nil {
		return
	}
	if hit {
		svc.metricsReg.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixVehicleList)).Inc()
	} else {
		svc.metricsReg.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixVehicleList)).Inc()
	}
}

// GetVehicle loads one vehicle with its full record graph. Returns nil when
// no vehicle with that id exists.
func (svc *FleetService) GetVehicle(ctx context.Context, id string) (*gormModels.Vehicle, error) {
	return svc.vehicles.GetByID(ctx, id)
}

// CreateVehicle registers a single vehicle without going through the bulk
// pipeline. Reference names are resolved the same way the importer resolves
// them, and registration numbers are normalized before storage so the
// duplicate check and the importer agree on identity.
func (svc *FleetService) CreateVehicle(ctx context.Context, ownerID string, req dtos.CreateVehicleRequest) (*gormModels.Vehicle, error) {
	if req.RegistrationNumber == "" && req.Name == "" {
		return nil, fmt.Errorf("either registration number or name is required")
	}
	if req.VehicleType == "" {
		return nil, fmt.Errorf("vehicle type is required")
	}

	var vehicle *gormModels.Vehicle
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolver := pipeline.NewReferenceResolver(tx)

		vehicleType, err := resolver.ResolveVehicleType(ctx, req.VehicleType)
		if err != nil {
			return err
		}

		vehicle = &gormModels.Vehicle{
			OwnerID:       ownerID,
			VehicleTypeID: vehicleType.ID,
			Status:        constants.VehicleStatusActive,
		}
		if req.RegistrationNumber != "" {
			reg := pipeline.NormalizeRegistration(req.RegistrationNumber)
			vehicle.RegistrationNumber = &reg
		}
		if req.Name != "" {
			name := req.Name
			vehicle.Name = &name
		}
		if req.Year.Valid {
			vehicle.Year = req.Year.Ptr()
		}

		if req.Make != "" {
			vehicleMake, err := resolver.ResolveMake(ctx, vehicleType.ID, req.Make)
			if err != nil {
				return err
			}
			vehicle.MakeID = &vehicleMake.ID
			if req.Model != "" {
				model, err := resolver.ResolveModel(ctx, vehicleMake.ID, req.Model, vehicle.Year)
				if err != nil {
					return err
				}
				vehicle.ModelID = &model.ID
			}
		}

		return tx.Create(vehicle).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	svc.invalidateList(ownerID)
	return vehicle, nil
}

// DeleteVehicle removes a vehicle and its entire record graph.
func (svc *FleetService) DeleteVehicle(ctx context.Context, ownerID, id string) error {
	if err := svc.vehicles.Delete(ctx, id); err != nil {
		return err
	}
	svc.invalidateList(ownerID)
	return nil
}

// PurgeFleet deletes every vehicle owned by ownerID and returns the count.
func (svc *FleetService) PurgeFleet(ctx context.Context, ownerID string) (int, error) {
	deleted, err := svc.vehicles.PurgeOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	svc.invalidateList(ownerID)
	logging.Info("Fleet purged", "owner_id", ownerID, "deleted", deleted)
	return deleted, nil
}

func (svc *FleetService) invalidateList(ownerID string) {
	svc.cache.Delete(common.VehicleListCacheKey(string(constants.CachePrefixVehicleList), ownerID))
}
