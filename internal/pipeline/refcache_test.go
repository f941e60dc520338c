package pipeline

import (
	"context"
	"testing"

	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/gorm"
)

func TestReferenceResolver_FindOrCreate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		r := NewReferenceResolver(tx)

		first, err := r.ResolveVehicleType(ctx, "Car")
		if err != nil {
			t.Fatalf("First resolve failed: %v", err)
		}
		// Case and whitespace variants hit the same row.
		second, err := r.ResolveVehicleType(ctx, "  car ")
		if err != nil {
			t.Fatalf("Second resolve failed: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("Expected same reference row, got %s and %s", first.ID, second.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	var n int64
	db.Model(&gormModels.VehicleType{}).Count(&n)
	if n != 1 {
		t.Errorf("Expected exactly one vehicle type row, got %d", n)
	}
}

func TestReferenceResolver_MakeScopedToType(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		r := NewReferenceResolver(tx)

		car, err := r.ResolveVehicleType(ctx, "Car")
		if err != nil {
			t.Fatal(err)
		}
		bike, err := r.ResolveVehicleType(ctx, "Motorcycle")
		if err != nil {
			t.Fatal(err)
		}

		// Honda the car maker and Honda the bike maker are distinct rows.
		carHonda, err := r.ResolveMake(ctx, car.ID, "Honda")
		if err != nil {
			t.Fatal(err)
		}
		bikeHonda, err := r.ResolveMake(ctx, bike.ID, "Honda")
		if err != nil {
			t.Fatal(err)
		}
		if carHonda.ID == bikeHonda.ID {
			t.Error("Expected makes scoped per vehicle type")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	var n int64
	db.Model(&gormModels.VehicleMake{}).Count(&n)
	if n != 2 {
		t.Errorf("Expected 2 make rows, got %d", n)
	}
}

func TestReferenceResolver_ModelYearWidening(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		r := NewReferenceResolver(tx)

		car, err := r.ResolveVehicleType(ctx, "Car")
		if err != nil {
			t.Fatal(err)
		}
		toyota, err := r.ResolveMake(ctx, car.ID, "Toyota")
		if err != nil {
			t.Fatal(err)
		}

		y2015 := 2015
		mdl, err := r.ResolveModel(ctx, toyota.ID, "Corolla", &y2015)
		if err != nil {
			t.Fatal(err)
		}
		if mdl.YearFrom == nil || *mdl.YearFrom != 2015 {
			t.Errorf("Expected year range seeded at 2015, got %+v", mdl)
		}

		// A fresh resolver (no run cache) sees an older year and widens the range.
		r2 := NewReferenceResolver(tx)
		y2009 := 2009
		widened, err := r2.ResolveModel(ctx, toyota.ID, "corolla", &y2009)
		if err != nil {
			t.Fatal(err)
		}
		if widened.ID != mdl.ID {
			t.Fatalf("Expected same model row, got %s and %s", widened.ID, mdl.ID)
		}
		if widened.YearFrom == nil || *widened.YearFrom != 2009 {
			t.Errorf("Expected year_from widened to 2009, got %+v", widened.YearFrom)
		}
		if widened.YearTo == nil || *widened.YearTo != 2015 {
			t.Errorf("Expected year_to kept at 2015, got %+v", widened.YearTo)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReferenceResolver_EmptyNameRejected(t *testing.T) {
	db := setupTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		r := NewReferenceResolver(tx)
		if _, err := r.ResolveVehicleType(context.Background(), "   "); err == nil {
			t.Error("Expected error for empty vehicle type name")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
