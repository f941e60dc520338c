package repositories

import (
	"context"
	"fmt"

	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/gorm"
)

// VehicleRepository handles vehicle table operations using GORM
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// GetByID retrieves a vehicle with its full detail graph. Returns nil when
// the vehicle does not exist.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*gormModels.Vehicle, error) {
	var vehicle gormModels.Vehicle

	err := r.db.WithContext(ctx).
		Preload("VehicleType").
		Preload("Make").
		Preload("Model").
		Preload("FuelRecords").
		Preload("Parts").
		Preload("Parts.Category").
		Preload("Consumables").
		Preload("Consumables.Type").
		Preload("ServiceRecords").
		Preload("ServiceRecords.Items").
		Preload("MOTRecords").
		Preload("RoadTaxRecords").
		Preload("Images").
		Preload("Attachments").
		Preload("Specification").
		Preload("InsurancePolicies").
		Where("id = ?", id).
		First(&vehicle).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	return &vehicle, nil
}

// ListByOwner retrieves all vehicles for an owner without detail collections.
func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]gormModels.Vehicle, error) {
	var vehicles []gormModels.Vehicle

	err := r.db.WithContext(ctx).
		Preload("VehicleType").
		Preload("Make").
		Preload("Model").
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&vehicles).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *gormModels.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// Delete removes one vehicle and its owned collections in a transaction.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteVehicleGraphs(tx, []string{id})
	})
}

// PurgeOwner tears down an owner's whole fleet transactionally.
func (r *VehicleRepository) PurgeOwner(ctx context.Context, ownerID string) (int, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&gormModels.Vehicle{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to list fleet for purge: %w", err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteVehicleGraphs(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// deleteVehicleGraphs cascades the delete through every owned collection
// before removing the vehicles themselves. Shared insurance policies are
// unlinked, not deleted.
func deleteVehicleGraphs(tx *gorm.DB, ids []string) error {
	var serviceRecordIDs []string
	if err := tx.Model(&gormModels.ServiceRecord{}).
		Where("vehicle_id IN ?", ids).
		Pluck("id", &serviceRecordIDs).Error; err != nil {
		return fmt.Errorf("failed to collect service records: %w", err)
	}
	if len(serviceRecordIDs) > 0 {
		if err := tx.Where("service_record_id IN ?", serviceRecordIDs).
			Delete(&gormModels.ServiceItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete service items: %w", err)
		}
	}

	owned := []interface{}{
		&gormModels.FuelRecord{},
		&gormModels.Part{},
		&gormModels.Consumable{},
		&gormModels.ServiceRecord{},
		&gormModels.MOTRecord{},
		&gormModels.RoadTaxRecord{},
		&gormModels.VehicleImage{},
		&gormModels.VehicleAttachment{},
		&gormModels.VehicleSpecification{},
	}
	for _, model := range owned {
		if err := tx.Where("vehicle_id IN ?", ids).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to delete owned records: %w", err)
		}
	}

	if err := tx.Exec("DELETE FROM vehicle_insurance_policies WHERE vehicle_id IN ?", ids).Error; err != nil {
		return fmt.Errorf("failed to unlink insurance policies: %w", err)
	}

	if err := tx.Where("id IN ?", ids).Delete(&gormModels.Vehicle{}).Error; err != nil {
		return fmt.Errorf("failed to delete vehicles: %w", err)
	}
	return nil
}
