package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"openfleet/fleetkeeper/internal/auth"
	"openfleet/fleetkeeper/internal/constants"
	appcontext "openfleet/fleetkeeper/internal/context"
	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"
	"openfleet/fleetkeeper/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testUserID = "user-0000-1111"

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func newTestTransferService(t *testing.T, db *gorm.DB) *services.TransferService {
	t.Helper()
	return services.NewTransferService(db, nil, nil, t.TempDir(), t.TempDir(), t.TempDir())
}

func withClaims(req *http.Request, role constants.UserRole) *http.Request {
	claims := &auth.APIKeyClaims{UserUUID: testUserID, RoleValue: role}
	return req.WithContext(appcontext.SetUserClaims(req.Context(), claims))
}

func TestImportHandler_Success(t *testing.T) {
	db := setupTestDB(t)
	handler := ImportHandler(newTestTransferService(t, db))

	body, _ := json.Marshal(dtos.ImportRequest{
		Records: []dtos.VehicleRecord{
			{RegistrationNumber: "ABC123", VehicleType: "Car", Name: "Daily"},
		},
		Tag: "unit-test",
	})

	req := httptest.NewRequest("POST", "/api/v1/fleet/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withClaims(req, constants.RoleOwner)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dtos.APIResponse[dtos.ImportResult]
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "success" || resp.Data == nil {
		t.Fatalf("Expected success envelope, got %s", rr.Body.String())
	}
	if !resp.Data.Success || resp.Data.VehiclesImported != 1 {
		t.Errorf("Expected 1 imported, got %+v", resp.Data)
	}

	var vehicle gormModels.Vehicle
	if err := db.First(&vehicle).Error; err != nil {
		t.Fatalf("Expected persisted vehicle: %v", err)
	}
	if vehicle.OwnerID != testUserID {
		t.Errorf("Expected caller as owner, got %q", vehicle.OwnerID)
	}
}

func TestImportHandler_RejectsUnauthenticated(t *testing.T) {
	db := setupTestDB(t)
	handler := ImportHandler(newTestTransferService(t, db))

	req := httptest.NewRequest("POST", "/api/v1/fleet/import", bytes.NewReader([]byte(`{"records":[]}`)))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rr.Code)
	}
}

func TestImportHandler_BadJSON(t *testing.T) {
	db := setupTestDB(t)
	handler := ImportHandler(newTestTransferService(t, db))

	req := withClaims(httptest.NewRequest("POST", "/api/v1/fleet/import", bytes.NewReader([]byte("{nope"))), constants.RoleOwner)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestImportArchiveHandler_CorruptArchiveIsUnsuccessfulResult(t *testing.T) {
	db := setupTestDB(t)
	handler := ImportArchiveHandler(newTestTransferService(t, db))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("archive", "fleet.zip")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("this is not a zip")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/v1/fleet/import/archive", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = withClaims(req, constants.RoleOwner)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 with unsuccessful result, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dtos.APIResponse[dtos.ImportResult]
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data == nil || resp.Data.Success {
		t.Errorf("Expected unsuccessful import result, got %s", rr.Body.String())
	}
	if len(resp.Data.Errors) == 0 {
		t.Error("Expected archive format error in result")
	}
}

func TestExportHandler_JSONMode(t *testing.T) {
	db := setupTestDB(t)
	transfer := newTestTransferService(t, db)

	// Seed through the import handler so owner scoping is exercised end to end.
	seed, _ := json.Marshal(dtos.ImportRequest{Records: []dtos.VehicleRecord{
		{RegistrationNumber: "EXP001", VehicleType: "Car", Name: "Exported"},
	}})
	seedReq := withClaims(httptest.NewRequest("POST", "/api/v1/fleet/import", bytes.NewReader(seed)), constants.RoleOwner)
	seedRR := httptest.NewRecorder()
	ImportHandler(transfer).ServeHTTP(seedRR, seedReq)
	if seedRR.Code != http.StatusOK {
		t.Fatalf("Seed import failed: %s", seedRR.Body.String())
	}

	req := withClaims(httptest.NewRequest("GET", "/api/v1/fleet/export?mode=json", nil), constants.RoleOwner)
	rr := httptest.NewRecorder()
	ExportHandler(transfer, nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dtos.APIResponse[dtos.ExportResult]
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data == nil || resp.Data.VehiclesExported != 1 {
		t.Fatalf("Expected 1 exported, got %s", rr.Body.String())
	}
	if resp.Data.Records[0].RegistrationNumber != "EXP001" {
		t.Errorf("Expected record in JSON mode, got %+v", resp.Data.Records)
	}
}

func TestExportHandler_UnknownMode(t *testing.T) {
	db := setupTestDB(t)
	req := withClaims(httptest.NewRequest("GET", "/api/v1/fleet/export?mode=carrier-pigeon", nil), constants.RoleOwner)
	rr := httptest.NewRecorder()
	ExportHandler(newTestTransferService(t, db), nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}
