package pipeline

import (
	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"
)

// SerializeOptions controls export-direction behavior. When
// EmbedAttachmentMetadata is false, image/attachment metadata is omitted
// from the per-vehicle record; the caller intends to carry those entities as
// raw files inside an archive instead.
type SerializeOptions struct {
	EmbedAttachmentMetadata bool
}

// SerializeVehicle walks a fully loaded vehicle aggregate into its canonical
// record. Derived fields (current mileage, next-due dates) are never
// serialized; only source-of-truth detail records travel, and the importer
// recomputes the rest.
func SerializeVehicle(v *gormModels.Vehicle, opts SerializeOptions) dtos.VehicleRecord {
	rec := dtos.VehicleRecord{
		RegistrationNumber: deref(v.RegistrationNumber),
		Name:               deref(v.Name),
		VehicleType:        v.VehicleType.Name,
		Year:               dtos.IntPtr(v.Year),
		VIN:                deref(v.VIN),
		PurchaseCost:       dtos.FloatPtr(v.PurchaseCost),
		PurchaseDate:       formatDate(v.PurchaseDate),
		PurchaseMileage:    dtos.IntPtr(v.PurchaseMileage),
		Status:             v.Status,
		TaxExempt:          dtos.Bool(v.TaxExempt),
		MOTExempt:          dtos.Bool(v.MOTExempt),
	}
	if v.Make != nil {
		rec.Make = v.Make.Name
	}
	if v.Model != nil {
		rec.Model = v.Model.Name
	}

	for _, fr := range v.FuelRecords {
		rec.FuelRecords = append(rec.FuelRecords, dtos.FuelRecordEntry{
			Date:         formatDate(fr.Date),
			Mileage:      dtos.IntPtr(fr.Mileage),
			Litres:       dtos.FloatPtr(fr.Litres),
			CostPerLitre: dtos.FloatPtr(fr.CostPerLitre),
			TotalCost:    dtos.FloatPtr(fr.TotalCost),
			Station:      deref(fr.Station),
			FullTank:     dtos.Bool(fr.FullTank),
		})
	}

	for _, p := range v.Parts {
		entry := dtos.PartEntry{
			Name:         p.Name,
			PartNumber:   deref(p.PartNumber),
			Cost:         dtos.FloatPtr(p.Cost),
			PurchaseDate: formatDate(p.PurchaseDate),
			Mileage:      dtos.IntPtr(p.Mileage),
			Notes:        deref(p.Notes),
		}
		if p.Category != nil {
			entry.Category = p.Category.Name
		}
		rec.Parts = append(rec.Parts, entry)
	}

	for _, c := range v.Consumables {
		entry := dtos.ConsumableEntry{
			Brand:    deref(c.Brand),
			Quantity: dtos.FloatPtr(c.Quantity),
			Cost:     dtos.FloatPtr(c.Cost),
			Date:     formatDate(c.Date),
			Notes:    deref(c.Notes),
		}
		if c.Type != nil {
			entry.Type = c.Type.Name
		}
		rec.Consumables = append(rec.Consumables, entry)
	}

	for _, sr := range v.ServiceRecords {
		entry := dtos.ServiceRecordEntry{
			Date:      formatDate(sr.Date),
			Mileage:   dtos.IntPtr(sr.Mileage),
			Garage:    deref(sr.Garage),
			TotalCost: dtos.FloatPtr(sr.TotalCost),
			Notes:     deref(sr.Notes),
		}
		for _, item := range sr.Items {
			entry.Items = append(entry.Items, dtos.ServiceItemEntry{
				Description: item.Description,
				Cost:        dtos.FloatPtr(item.Cost),
			})
		}
		rec.ServiceRecords = append(rec.ServiceRecords, entry)
	}

	for _, m := range v.MOTRecords {
		rec.MOTRecords = append(rec.MOTRecords, dtos.MOTRecordEntry{
			TestDate:      formatDate(m.TestDate),
			ExpiryDate:    formatDate(m.ExpiryDate),
			Result:        deref(m.Result),
			TestNumber:    deref(m.TestNumber),
			Mileage:       dtos.IntPtr(m.Mileage),
			AdvisoryNotes: deref(m.AdvisoryNotes),
		})
	}

	for _, rt := range v.RoadTaxRecords {
		rec.RoadTaxRecords = append(rec.RoadTaxRecords, dtos.RoadTaxRecordEntry{
			ValidFrom: formatDate(rt.ValidFrom),
			ValidTo:   formatDate(rt.ValidTo),
			Cost:      dtos.FloatPtr(rt.Cost),
		})
	}

	for _, ip := range v.InsurancePolicies {
		rec.InsuranceRecords = append(rec.InsuranceRecords, dtos.InsuranceRecordEntry{
			Provider:     ip.Provider,
			PolicyNumber: deref(ip.PolicyNumber),
			StartDate:    formatDate(ip.StartDate),
			EndDate:      formatDate(ip.EndDate),
			AnnualCost:   dtos.FloatPtr(ip.AnnualCost),
		})
	}

	if opts.EmbedAttachmentMetadata {
		for _, img := range v.Images {
			rec.Images = append(rec.Images, dtos.ImageEntry{
				FileName:  archiveFileName(img.FilePath, img.FileName),
				Caption:   deref(img.Caption),
				IsPrimary: dtos.Bool(img.IsPrimary),
			})
		}
		for _, att := range v.Attachments {
			rec.Attachments = append(rec.Attachments, dtos.AttachmentEntry{
				FileName:    archiveFileName(att.FilePath, att.FileName),
				Description: deref(att.Description),
			})
		}
	}

	if v.Specification != nil {
		rec.Specification = &dtos.SpecificationEntry{
			EngineSize:   deref(v.Specification.EngineSize),
			FuelType:     deref(v.Specification.FuelType),
			Transmission: deref(v.Specification.Transmission),
			Doors:        dtos.IntPtr(v.Specification.Doors),
			Seats:        dtos.IntPtr(v.Specification.Seats),
			Colour:       deref(v.Specification.Colour),
			KerbWeightKg: dtos.IntPtr(v.Specification.KerbWeightKg),
		}
	}

	return rec
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
