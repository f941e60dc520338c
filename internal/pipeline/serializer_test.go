package pipeline

import (
	"context"
	"os"
	"testing"
	"time"

	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSerializeVehicle_FullGraph(t *testing.T) {
	reg := "SER001"
	name := "Daily driver"
	garage := "Smith Motors"
	cost := 45.0

	v := &gormModels.Vehicle{
		RegistrationNumber: &reg,
		Name:               &name,
		VehicleType:        gormModels.VehicleType{Name: "Car"},
		Make:               &gormModels.VehicleMake{Name: "Toyota"},
		Model:              &gormModels.VehicleModel{Name: "Corolla"},
		PurchaseDate:       date(2020, time.June, 15),
		Status:             "active",
		FuelRecords: []gormModels.FuelRecord{
			{Date: date(2024, time.January, 10), TotalCost: &cost, FullTank: true},
		},
		ServiceRecords: []gormModels.ServiceRecord{
			{Date: date(2023, time.November, 5), Garage: &garage, Items: []gormModels.ServiceItem{
				{Description: "Oil change", Cost: &cost},
			}},
		},
	}

	rec := SerializeVehicle(v, SerializeOptions{EmbedAttachmentMetadata: true})

	if rec.RegistrationNumber != "SER001" || rec.Name != "Daily driver" {
		t.Errorf("Identity fields wrong: %+v", rec)
	}
	if rec.VehicleType != "Car" || rec.Make != "Toyota" || rec.Model != "Corolla" {
		t.Errorf("Reference names wrong: %+v", rec)
	}
	if rec.PurchaseDate != "2020-06-15" {
		t.Errorf("Expected calendar date, got %q", rec.PurchaseDate)
	}
	if len(rec.FuelRecords) != 1 || rec.FuelRecords[0].Date != "2024-01-10" {
		t.Errorf("Fuel record wrong: %+v", rec.FuelRecords)
	}
	if !rec.FuelRecords[0].FullTank.Valid || !rec.FuelRecords[0].FullTank.Bool {
		t.Error("Expected fullTank true")
	}
	if len(rec.ServiceRecords) != 1 || rec.ServiceRecords[0].Garage != "Smith Motors" {
		t.Errorf("Service record wrong: %+v", rec.ServiceRecords)
	}
	if len(rec.ServiceRecords[0].Items) != 1 || rec.ServiceRecords[0].Items[0].Description != "Oil change" {
		t.Errorf("Service items wrong: %+v", rec.ServiceRecords[0].Items)
	}
}

func TestSerializeVehicle_AttachmentMetadataFlag(t *testing.T) {
	v := &gormModels.Vehicle{
		VehicleType: gormModels.VehicleType{Name: "Car"},
		Images: []gormModels.VehicleImage{
			{FileName: "front.jpg", FilePath: "/storage/images/uuid-1234.jpg"},
		},
		Attachments: []gormModels.VehicleAttachment{
			{FileName: "v5c.pdf"},
		},
	}

	embedded := SerializeVehicle(v, SerializeOptions{EmbedAttachmentMetadata: true})
	if len(embedded.Images) != 1 || len(embedded.Attachments) != 1 {
		t.Fatalf("Expected media metadata embedded, got %+v", embedded)
	}
	// Staged payloads travel under the stored basename so archive references line up.
	if embedded.Images[0].FileName != "uuid-1234.jpg" {
		t.Errorf("Expected stored basename, got %q", embedded.Images[0].FileName)
	}
	// No staged file: the original upload name is all there is.
	if embedded.Attachments[0].FileName != "v5c.pdf" {
		t.Errorf("Expected original name, got %q", embedded.Attachments[0].FileName)
	}

	stripped := SerializeVehicle(v, SerializeOptions{EmbedAttachmentMetadata: false})
	if len(stripped.Images) != 0 || len(stripped.Attachments) != 0 {
		t.Errorf("Expected media metadata omitted, got %+v", stripped)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())
	ctx := context.Background()

	original := []dtos.VehicleRecord{
		{
			RegistrationNumber: "RT001",
			VehicleType:        "Car",
			Make:               "Honda",
			Model:              "Civic",
			Year:               dtos.Int(2018),
			FuelRecords: []dtos.FuelRecordEntry{
				{Date: "2024-04-01", Litres: dtos.Float(38.2), TotalCost: dtos.Float(55.99)},
			},
			InsuranceRecords: []dtos.InsuranceRecordEntry{
				{Provider: "Acme Insurance", StartDate: "2024-01-01", EndDate: "2024-12-31"},
			},
			Specification: &dtos.SpecificationEntry{FuelType: "petrol", Doors: dtos.Int(5)},
		},
	}

	if res, err := imp.Run(ctx, original, ImportOptions{OwnerID: testOwnerID}); err != nil || res.VehiclesImported != 1 {
		t.Fatalf("Seed import failed: res=%+v err=%v", res, err)
	}

	exp := NewExporter(db)
	out, err := exp.Run(ctx, ExportOptions{OwnerID: testOwnerID, EmbedAttachmentMetadata: true})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !out.Success || out.VehiclesExported != 1 {
		t.Fatalf("Expected 1 exported, got %+v", out)
	}

	got := out.Records[0]
	if got.RegistrationNumber != "RT001" || got.Make != "Honda" || got.Model != "Civic" {
		t.Errorf("Round trip lost identity: %+v", got)
	}
	if !got.Year.Valid || got.Year.Int != 2018 {
		t.Errorf("Round trip lost year: %+v", got.Year)
	}
	if len(got.FuelRecords) != 1 || got.FuelRecords[0].Date != "2024-04-01" {
		t.Errorf("Round trip lost fuel records: %+v", got.FuelRecords)
	}
	if len(got.InsuranceRecords) != 1 || got.InsuranceRecords[0].Provider != "Acme Insurance" {
		t.Errorf("Round trip lost insurance: %+v", got.InsuranceRecords)
	}
	if got.Specification == nil || got.Specification.FuelType != "petrol" {
		t.Errorf("Round trip lost specification: %+v", got.Specification)
	}

	// Re-importing the exported records into a fresh owner works verbatim.
	res, err := imp.Run(ctx, out.Records, ImportOptions{OwnerID: "other-owner"})
	if err != nil {
		t.Fatalf("Re-import failed: %v", err)
	}
	if res.VehiclesImported != 1 {
		t.Errorf("Expected re-import of 1, got %+v", res)
	}
}

func TestExporter_ArchiveMode(t *testing.T) {
	db := setupTestDB(t)
	storageDir := t.TempDir()
	imp := NewImporter(db, storageDir)
	ctx := context.Background()

	if _, err := imp.Run(ctx, []dtos.VehicleRecord{
		{RegistrationNumber: "ZIP001", VehicleType: "Car", Name: "To archive"},
	}, ImportOptions{OwnerID: testOwnerID}); err != nil {
		t.Fatalf("Seed import failed: %v", err)
	}

	outDir := t.TempDir()
	exp := NewExporter(db)
	result, err := exp.Run(ctx, ExportOptions{OwnerID: testOwnerID, ArchiveOutputDir: outDir})
	if err != nil {
		t.Fatalf("Archive export failed: %v", err)
	}

	if result.ArchivePath == "" {
		t.Fatal("Expected archive path in archive mode")
	}
	if len(result.Records) != 0 {
		t.Error("Expected no inline records in archive mode")
	}

	data, err := os.ReadFile(result.ArchivePath)
	if err != nil {
		t.Fatalf("Expected archive on disk: %v", err)
	}
	unpacked, err := UnpackArchive(data, t.TempDir())
	if err != nil {
		t.Fatalf("Packaged archive does not unpack: %v", err)
	}
	defer unpacked.Close()
	if len(unpacked.Records) != 1 || unpacked.Records[0].RegistrationNumber != "ZIP001" {
		t.Errorf("Packaged manifest wrong: %+v", unpacked.Records)
	}
}

func TestExporter_EmptyFleet(t *testing.T) {
	db := setupTestDB(t)
	exp := NewExporter(db)

	result, err := exp.Run(context.Background(), ExportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !result.Success {
		t.Error("Expected success true for empty fleet")
	}
	if result.VehiclesExported != 0 {
		t.Errorf("Expected 0 exported, got %d", result.VehiclesExported)
	}
	if result.Stats == nil {
		t.Fatal("Expected stats on empty export")
	}
}

func TestExporter_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	imp := NewImporter(db, t.TempDir())
	ctx := context.Background()

	if _, err := imp.Run(ctx, []dtos.VehicleRecord{
		{RegistrationNumber: "MINE01", VehicleType: "Car", Name: "Mine"},
	}, ImportOptions{OwnerID: testOwnerID}); err != nil {
		t.Fatal(err)
	}
	if _, err := imp.Run(ctx, []dtos.VehicleRecord{
		{RegistrationNumber: "OTHER1", VehicleType: "Car", Name: "Theirs"},
	}, ImportOptions{OwnerID: "someone-else"}); err != nil {
		t.Fatal(err)
	}

	exp := NewExporter(db)
	scoped, err := exp.Run(ctx, ExportOptions{OwnerID: testOwnerID})
	if err != nil {
		t.Fatal(err)
	}
	if scoped.VehiclesExported != 1 {
		t.Errorf("Expected owner scope of 1, got %d", scoped.VehiclesExported)
	}

	all, err := exp.Run(ctx, ExportOptions{AllOwners: true})
	if err != nil {
		t.Fatal(err)
	}
	if all.VehiclesExported != 2 {
		t.Errorf("Expected system-wide scope of 2, got %d", all.VehiclesExported)
	}
}
