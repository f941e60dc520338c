package pipeline

import (
	"testing"

	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testOwnerID = "owner-0000-1111"

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&gormModels.User{},
		&gormModels.VehicleType{},
		&gormModels.VehicleMake{},
		&gormModels.VehicleModel{},
		&gormModels.ConsumableType{},
		&gormModels.PartCategory{},
		&gormModels.Vehicle{},
		&gormModels.FuelRecord{},
		&gormModels.Part{},
		&gormModels.Consumable{},
		&gormModels.ServiceRecord{},
		&gormModels.ServiceItem{},
		&gormModels.MOTRecord{},
		&gormModels.RoadTaxRecord{},
		&gormModels.InsurancePolicy{},
		&gormModels.VehicleImage{},
		&gormModels.VehicleAttachment{},
		&gormModels.VehicleSpecification{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func countVehicles(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&gormModels.Vehicle{}).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count vehicles: %v", err)
	}
	return n
}
