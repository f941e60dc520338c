package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"openfleet/fleetkeeper/internal/constants"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"github.com/google/uuid"
)

// GraphBuilder constructs a Vehicle aggregate from one canonical record.
// The returned aggregate is fully attached but not yet flushed; the
// orchestrator owns persistence and the transaction boundary.
type GraphBuilder struct {
	refs *ReferenceResolver

	// storageDir is the live storage root binaries are copied into.
	// payloadDir is the extracted files/ tree of an archive import, empty
	// when the records arrived as plain JSON.
	storageDir string
	payloadDir string
}

func NewGraphBuilder(refs *ReferenceResolver, storageDir, payloadDir string) *GraphBuilder {
	return &GraphBuilder{refs: refs, storageDir: storageDir, payloadDir: payloadDir}
}

// BuildVehicle validates identity, resolves references and attaches every
// dependent collection present in the record. A *ValidationError return is
// per-item and non-fatal; any other error is an infrastructure fault the
// caller must treat as fatal for the whole run.
func (b *GraphBuilder) BuildVehicle(ctx context.Context, rec *dtos.VehicleRecord, ownerID string) (*gormModels.Vehicle, error) {
	if verr := validateIdentity(rec); verr != nil {
		return nil, verr
	}

	vt, err := b.refs.ResolveVehicleType(ctx, rec.VehicleType)
	if err != nil {
		return nil, err
	}

	vehicle := &gormModels.Vehicle{
		OwnerID:            ownerID,
		VehicleTypeID:      vt.ID,
		RegistrationNumber: optionalString(rec.RegistrationNumber),
		Name:               optionalString(rec.Name),
		VIN:                optionalString(rec.VIN),
		Year:               rec.Year.Ptr(),
		PurchaseCost:       rec.PurchaseCost.Ptr(),
		PurchaseDate:       parseDate(rec.PurchaseDate),
		PurchaseMileage:    rec.PurchaseMileage.Ptr(),
		Status:             constants.VehicleStatusActive,
		TaxExempt:          rec.TaxExempt.Valid && rec.TaxExempt.Bool,
		MOTExempt:          rec.MOTExempt.Valid && rec.MOTExempt.Bool,
	}
	if s := strings.TrimSpace(rec.Status); s != "" {
		vehicle.Status = s
	}

	// Make and model are optional detail. A make without a resolvable model
	// still imports; the model reference is simply left unset.
	if strings.TrimSpace(rec.Make) != "" {
		mk, err := b.refs.ResolveMake(ctx, vt.ID, rec.Make)
		if err != nil {
			return nil, err
		}
		vehicle.MakeID = &mk.ID
		if strings.TrimSpace(rec.Model) != "" {
			mdl, err := b.refs.ResolveModel(ctx, mk.ID, rec.Model, rec.Year.Ptr())
			if err != nil {
				return nil, err
			}
			vehicle.ModelID = &mdl.ID
		}
	}

	if err := b.attachFuelRecords(rec, vehicle); err != nil {
		return nil, err
	}
	if err := b.attachParts(ctx, rec, vehicle); err != nil {
		return nil, err
	}
	if err := b.attachConsumables(ctx, rec, vehicle); err != nil {
		return nil, err
	}
	b.attachServiceRecords(rec, vehicle)
	b.attachMOTRecords(rec, vehicle)
	b.attachRoadTaxRecords(rec, vehicle)
	b.attachInsurance(rec, vehicle)
	b.attachMedia(rec, vehicle)
	b.attachSpecification(rec, vehicle)

	return vehicle, nil
}

// validateIdentity enforces the acceptance invariant: a resolvable vehicle
// type plus at least one identity signal (registration, name, or make+model).
func validateIdentity(rec *dtos.VehicleRecord) *ValidationError {
	var missing []string
	if strings.TrimSpace(rec.VehicleType) == "" {
		missing = append(missing, "vehicleType")
	}

	hasReg := strings.TrimSpace(rec.RegistrationNumber) != ""
	hasName := strings.TrimSpace(rec.Name) != ""
	hasMakeModel := strings.TrimSpace(rec.Make) != "" && strings.TrimSpace(rec.Model) != ""
	if !hasReg && !hasName && !hasMakeModel {
		missing = append(missing, "registrationNumber or name or make+model")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (b *GraphBuilder) attachFuelRecords(rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) error {
	for _, entry := range rec.FuelRecords {
		// a fuel record with no date and no cost carries nothing worth keeping
		if parseDate(entry.Date) == nil && !entry.TotalCost.Valid && !entry.Litres.Valid {
			continue
		}
		vehicle.FuelRecords = append(vehicle.FuelRecords, gormModels.FuelRecord{
			Date:         parseDate(entry.Date),
			Mileage:      entry.Mileage.Ptr(),
			Litres:       entry.Litres.Ptr(),
			CostPerLitre: entry.CostPerLitre.Ptr(),
			TotalCost:    entry.TotalCost.Ptr(),
			Station:      optionalString(entry.Station),
			FullTank:     !entry.FullTank.Valid || entry.FullTank.Bool,
		})
	}
	return nil
}

func (b *GraphBuilder) attachParts(ctx context.Context, rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) error {
	for _, entry := range rec.Parts {
		if strings.TrimSpace(entry.Name) == "" {
			continue // child missing its own required field: skipped individually
		}
		part := gormModels.Part{
			Name:         strings.TrimSpace(entry.Name),
			PartNumber:   optionalString(entry.PartNumber),
			Cost:         entry.Cost.Ptr(),
			PurchaseDate: parseDate(entry.PurchaseDate),
			Mileage:      entry.Mileage.Ptr(),
			Notes:        optionalString(entry.Notes),
		}
		if strings.TrimSpace(entry.Category) != "" {
			cat, err := b.refs.ResolvePartCategory(ctx, entry.Category)
			if err != nil {
				return err
			}
			part.CategoryID = &cat.ID
		}
		vehicle.Parts = append(vehicle.Parts, part)
	}
	return nil
}

func (b *GraphBuilder) attachConsumables(ctx context.Context, rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) error {
	for _, entry := range rec.Consumables {
		if strings.TrimSpace(entry.Type) == "" {
			continue
		}
		ct, err := b.refs.ResolveConsumableType(ctx, entry.Type)
		if err != nil {
			return err
		}
		vehicle.Consumables = append(vehicle.Consumables, gormModels.Consumable{
			TypeID:   &ct.ID,
			Brand:    optionalString(entry.Brand),
			Quantity: entry.Quantity.Ptr(),
			Cost:     entry.Cost.Ptr(),
			Date:     parseDate(entry.Date),
			Notes:    optionalString(entry.Notes),
		})
	}
	return nil
}

func (b *GraphBuilder) attachServiceRecords(rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) {
	for _, entry := range rec.ServiceRecords {
		if parseDate(entry.Date) == nil && !entry.TotalCost.Valid && len(entry.Items) == 0 {
			continue
		}
		sr := gormModels.ServiceRecord{
			Date:      parseDate(entry.Date),
			Mileage:   entry.Mileage.Ptr(),
			Garage:    optionalString(entry.Garage),
			TotalCost: entry.TotalCost.Ptr(),
			Notes:     optionalString(entry.Notes),
		}
		for _, item := range entry.Items {
			if strings.TrimSpace(item.Description) == "" {
				continue
			}
			sr.Items = append(sr.Items, gormModels.ServiceItem{
				Description: strings.TrimSpace(item.Description),
				Cost:        item.Cost.Ptr(),
			})
		}
		vehicle.ServiceRecords = append(vehicle.ServiceRecords, sr)
	}
}

func (b *GraphBuilder) attachMOTRecords(rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) {
	for _, entry := range rec.MOTRecords {
		if parseDate(entry.TestDate) == nil {
			continue
		}
		vehicle.MOTRecords = append(vehicle.MOTRecords, gormModels.MOTRecord{
			TestDate:      parseDate(entry.TestDate),
			ExpiryDate:    parseDate(entry.ExpiryDate),
			Result:        optionalString(entry.Result),
			TestNumber:    optionalString(entry.TestNumber),
			Mileage:       entry.Mileage.Ptr(),
			AdvisoryNotes: optionalString(entry.AdvisoryNotes),
		})
	}
}

func (b *GraphBuilder) attachRoadTaxRecords(rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) {
	for _, entry := range rec.RoadTaxRecords {
		if parseDate(entry.ValidFrom) == nil {
			continue
		}
		vehicle.RoadTaxRecords = append(vehicle.RoadTaxRecords, gormModels.RoadTaxRecord{
			ValidFrom: parseDate(entry.ValidFrom),
			ValidTo:   parseDate(entry.ValidTo),
			Cost:      entry.Cost.Ptr(),
		})
	}
}

func (b *GraphBuilder) attachInsurance(rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) {
	for _, entry := range rec.InsuranceRecords {
		if strings.TrimSpace(entry.Provider) == "" {
			continue
		}
		vehicle.InsurancePolicies = append(vehicle.InsurancePolicies, gormModels.InsurancePolicy{
			Provider:     strings.TrimSpace(entry.Provider),
			PolicyNumber: optionalString(entry.PolicyNumber),
			StartDate:    parseDate(entry.StartDate),
			EndDate:      parseDate(entry.EndDate),
			AnnualCost:   entry.AnnualCost.Ptr(),
		})
	}
}

func (b *GraphBuilder) attachMedia(rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) {
	for _, entry := range rec.Images {
		if strings.TrimSpace(entry.FileName) == "" {
			continue
		}
		img := gormModels.VehicleImage{
			FileName:  entry.FileName,
			Caption:   optionalString(entry.Caption),
			IsPrimary: entry.IsPrimary.Valid && entry.IsPrimary.Bool,
		}
		// Payload miss degrades to a metadata-only record; never fails the vehicle.
		if path, ok := b.stagePayload("images", entry.FileName); ok {
			img.FilePath = path
		}
		vehicle.Images = append(vehicle.Images, img)
	}

	for _, entry := range rec.Attachments {
		if strings.TrimSpace(entry.FileName) == "" {
			continue
		}
		att := gormModels.VehicleAttachment{
			FileName:    entry.FileName,
			Description: optionalString(entry.Description),
		}
		if path, ok := b.stagePayload("attachments", entry.FileName); ok {
			att.FilePath = path
		}
		vehicle.Attachments = append(vehicle.Attachments, att)
	}
}

func (b *GraphBuilder) attachSpecification(rec *dtos.VehicleRecord, vehicle *gormModels.Vehicle) {
	spec := rec.Specification
	if spec == nil {
		return
	}
	vehicle.Specification = &gormModels.VehicleSpecification{
		EngineSize:   optionalString(spec.EngineSize),
		FuelType:     optionalString(spec.FuelType),
		Transmission: optionalString(spec.Transmission),
		Doors:        spec.Doors.Ptr(),
		Seats:        spec.Seats.Ptr(),
		Colour:       optionalString(spec.Colour),
		KerbWeightKg: spec.KerbWeightKg.Ptr(),
	}
}

// stagePayload locates a binary under the extracted files/ tree and copies
// it into live storage under a collision-proof name. Returns false on any
// miss or copy failure; the archive is best-effort for binaries.
func (b *GraphBuilder) stagePayload(kind, fileName string) (string, bool) {
	if b.payloadDir == "" || b.storageDir == "" {
		return "", false
	}

	src := filepath.Join(b.payloadDir, kind, filepath.Base(fileName))
	in, err := os.Open(src)
	if err != nil {
		return "", false
	}
	defer in.Close()

	destDir := filepath.Join(b.storageDir, kind)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		logging.Warn("Failed to create storage dir", "dir", destDir, "error", err.Error())
		return "", false
	}

	dest := filepath.Join(destDir, uuid.NewString()+filepath.Ext(fileName))
	out, err := os.Create(dest)
	if err != nil {
		logging.Warn("Failed to stage payload", "file", fileName, "error", err.Error())
		return "", false
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		logging.Warn("Failed to copy payload", "file", fileName, "error", err.Error())
		os.Remove(dest)
		return "", false
	}
	return dest, true
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
