package pipeline

import (
	"context"
	"strings"
	"testing"

	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"
)

func TestImporter_SingleValidRecord(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	records := []dtos.VehicleRecord{
		{
			RegistrationNumber: "ABC123",
			VehicleType:        "Car",
			Make:               "Toyota",
			Model:              "Corolla",
			Year:               dtos.Int(2015),
			FuelRecords: []dtos.FuelRecordEntry{
				{Date: "2024-01-10", Litres: dtos.Float(41.5), TotalCost: dtos.Float(62.20)},
			},
		},
	}

	result, err := imp.Run(context.Background(), records, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.Success {
		t.Error("Expected success true")
	}
	if result.VehiclesImported != 1 {
		t.Errorf("Expected 1 vehicle imported, got %d", result.VehiclesImported)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", result.Errors)
	}
	if result.Stats[dtos.StatItems] != 1 {
		t.Errorf("Expected items stat 1, got %v", result.Stats[dtos.StatItems])
	}
	if _, ok := result.Stats[dtos.StatSeconds]; !ok {
		t.Error("Expected seconds stat to be present")
	}
	if _, ok := result.Stats[dtos.StatPeakMemoryMB]; !ok {
		t.Error("Expected peak memory stat to be present")
	}

	var vehicle gormModels.Vehicle
	if err := db.Preload("FuelRecords").Preload("VehicleType").First(&vehicle).Error; err != nil {
		t.Fatalf("Expected persisted vehicle: %v", err)
	}
	if vehicle.RegistrationNumber == nil || *vehicle.RegistrationNumber != "ABC123" {
		t.Errorf("Expected registration ABC123, got %v", vehicle.RegistrationNumber)
	}
	if vehicle.VehicleType.Name != "Car" {
		t.Errorf("Expected vehicle type Car, got %q", vehicle.VehicleType.Name)
	}
	if len(vehicle.FuelRecords) != 1 {
		t.Errorf("Expected 1 fuel record, got %d", len(vehicle.FuelRecords))
	}
}

func TestImporter_DuplicateSecondRun(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())
	ctx := context.Background()

	records := []dtos.VehicleRecord{
		{RegistrationNumber: "abc123", VehicleType: "Car", Name: "Runabout"},
	}

	first, err := imp.Run(ctx, records, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first.VehiclesImported != 1 {
		t.Fatalf("Expected first run to import 1, got %d", first.VehiclesImported)
	}

	// Same registration, different case and spacing.
	second, err := imp.Run(ctx, []dtos.VehicleRecord{
		{RegistrationNumber: " ABC123 ", VehicleType: "Car", Name: "Runabout again"},
	}, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if second.VehiclesImported != 0 {
		t.Errorf("Expected 0 imported on duplicate, got %d", second.VehiclesImported)
	}
	if second.Success {
		t.Error("Expected success false when every candidate was rejected")
	}
	if len(second.Errors) != 1 || !strings.Contains(second.Errors[0], "already exists") {
		t.Errorf("Expected an already-exists error, got %v", second.Errors)
	}
	if n := countVehicles(t, db); n != 1 {
		t.Errorf("Expected 1 vehicle total, got %d", n)
	}
}

func TestImporter_WithinBatchDuplicate(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	result, err := imp.Run(context.Background(), []dtos.VehicleRecord{
		{RegistrationNumber: "XYZ789", VehicleType: "Car", Name: "First"},
		{RegistrationNumber: "xyz789", VehicleType: "Car", Name: "Second"},
	}, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.VehiclesImported != 1 {
		t.Errorf("Expected 1 imported, got %d", result.VehiclesImported)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 duplicate error, got %v", result.Errors)
	}
	if !result.Success {
		t.Error("Expected success true for partial import")
	}
}

func TestImporter_DryRunLeavesNothingBehind(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	result, err := imp.Run(context.Background(), []dtos.VehicleRecord{
		{RegistrationNumber: "DRY001", VehicleType: "Car", Name: "Phantom"},
	}, ImportOptions{OwnerID: testOwnerID, DryRun: true})
	if err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}

	if !result.DryRun {
		t.Error("Expected dryRun true in result")
	}
	if !result.Success {
		t.Error("Expected success true")
	}
	if result.VehiclesImported != 1 {
		t.Errorf("Expected dry run to report 1 would-be import, got %d", result.VehiclesImported)
	}
	if n := countVehicles(t, db); n != 0 {
		t.Errorf("Expected 0 vehicles after dry run, got %d", n)
	}

	var refCount int64
	db.Model(&gormModels.VehicleType{}).Count(&refCount)
	if refCount != 0 {
		t.Errorf("Expected reference creation to roll back with dry run, got %d types", refCount)
	}
}

func TestImporter_PartialFailureIsolation(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	records := []dtos.VehicleRecord{
		{RegistrationNumber: "OK1", VehicleType: "Car", Name: "Good one"},
		{VehicleType: "Car"}, // no identity signal at all
		{RegistrationNumber: "OK2", VehicleType: "Motorcycle", Name: "Also good"},
		{Name: "No type"}, // missing vehicleType
	}

	result, err := imp.Run(context.Background(), records, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected success true with partial failures")
	}
	if result.VehiclesImported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.VehiclesImported)
	}
	if len(result.Errors) != 2 {
		t.Errorf("Expected 2 errors, got %v", result.Errors)
	}
	for _, msg := range result.Errors {
		if !strings.Contains(msg, "missing required field") {
			t.Errorf("Expected a validation message, got %q", msg)
		}
	}
	if n := countVehicles(t, db); n != 2 {
		t.Errorf("Expected 2 vehicles persisted, got %d", n)
	}
}

func TestImporter_AllInvalid(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	result, err := imp.Run(context.Background(), []dtos.VehicleRecord{
		{VehicleType: "Car"},
	}, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Success {
		t.Error("Expected success false when nothing imported and errors present")
	}
	if result.VehiclesImported != 0 {
		t.Errorf("Expected 0 imported, got %d", result.VehiclesImported)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %v", result.Errors)
	}
}

func TestImporter_EmptyInput(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	result, err := imp.Run(context.Background(), nil, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Expected unsuccessful result, not error, got %v", err)
	}

	if result.Success {
		t.Error("Expected success false on empty input")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "no records") {
		t.Errorf("Expected a no-records error, got %v", result.Errors)
	}
	if result.Stats == nil {
		t.Fatal("Expected stats even on empty input")
	}
	if result.Stats[dtos.StatItems] != 0 {
		t.Errorf("Expected items stat 0, got %v", result.Stats[dtos.StatItems])
	}
}

func TestImporter_SourceTagStamped(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	_, err := imp.Run(context.Background(), []dtos.VehicleRecord{
		{RegistrationNumber: "TAG001", VehicleType: "Car", Name: "Tagged"},
	}, ImportOptions{OwnerID: testOwnerID, SourceTag: "garage-export-2024"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var vehicle gormModels.Vehicle
	if err := db.First(&vehicle).Error; err != nil {
		t.Fatalf("Expected persisted vehicle: %v", err)
	}
	if vehicle.ImportTag == nil || *vehicle.ImportTag != "garage-export-2024" {
		t.Errorf("Expected import tag stamped, got %v", vehicle.ImportTag)
	}
}

func TestImporter_SharedReferencesReused(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())

	_, err := imp.Run(context.Background(), []dtos.VehicleRecord{
		{RegistrationNumber: "R1", VehicleType: "Car", Make: "Toyota", Model: "Corolla"},
		{RegistrationNumber: "R2", VehicleType: "car", Make: "toyota", Model: "corolla"},
	}, ImportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var typeCount, makeCount, modelCount int64
	db.Model(&gormModels.VehicleType{}).Count(&typeCount)
	db.Model(&gormModels.VehicleMake{}).Count(&makeCount)
	db.Model(&gormModels.VehicleModel{}).Count(&modelCount)

	if typeCount != 1 || makeCount != 1 || modelCount != 1 {
		t.Errorf("Expected one shared row per reference, got types=%d makes=%d models=%d",
			typeCount, makeCount, modelCount)
	}
}
