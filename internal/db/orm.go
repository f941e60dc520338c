package db

import (
	"fmt"
	"log"

	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}

// Migrate creates the full fleet schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormModels.User{},
		&gormModels.ApiKey{},
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
		&gormModels.ImportHistory{},
	)
}
