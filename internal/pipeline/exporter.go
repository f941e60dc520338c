package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"openfleet/fleetkeeper/internal/constants"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/gorm"
)

// Exporter serializes a fleet into canonical records, optionally packaged
// into an archive. IDs are fetched first in one query, then vehicles are
// re-materialized and serialized in fixed-size batches to bound memory on
// large fleets.
type Exporter struct {
	db *gorm.DB
}

func NewExporter(db *gorm.DB) *Exporter {
	return &Exporter{db: db}
}

type ExportOptions struct {
	OwnerID string
	// AllOwners removes the owner filter entirely; administrator only.
	AllOwners               bool
	EmbedAttachmentMetadata bool
	// ArchiveOutputDir switches to archive mode: records plus binaries are
	// packaged into a zip written under this directory.
	ArchiveOutputDir string
}

// Run exports the scoped fleet. Always populates statistics, even for an
// empty fleet, so the caller renders a consistent result shape.
func (e *Exporter) Run(ctx context.Context, opts ExportOptions) (*dtos.ExportResult, error) {
	stats := newRunStats()
	result := &dtos.ExportResult{Errors: []string{}}

	ids, err := e.fetchIDs(ctx, opts)
	if err != nil {
		return nil, &StorageFault{Op: "vehicle id query", Err: err}
	}
	stats.items = len(ids)

	records := make([]dtos.VehicleRecord, 0, len(ids))
	var archiveVehicles []gormModels.Vehicle
	serOpts := SerializeOptions{EmbedAttachmentMetadata: opts.EmbedAttachmentMetadata}

	for start := 0; start < len(ids); start += constants.ExportBatchSize {
		end := start + constants.ExportBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch, err := e.fetchBatch(ctx, ids[start:end])
		if err != nil {
			return nil, &StorageFault{Op: "vehicle batch load", Err: err}
		}

		for i := range batch {
			records = append(records, SerializeVehicle(&batch[i], serOpts))
		}

		if opts.ArchiveOutputDir != "" {
			// archive mode keeps only the media slices alive across batches
			for i := range batch {
				archiveVehicles = append(archiveVehicles, gormModels.Vehicle{
					Images:      batch[i].Images,
					Attachments: batch[i].Attachments,
				})
			}
		}
	}

	result.VehiclesExported = len(records)

	if opts.ArchiveOutputDir != "" {
		if err := os.MkdirAll(opts.ArchiveOutputDir, 0o755); err != nil {
			return nil, &StorageFault{Op: "archive dir create", Err: err}
		}
		outPath := filepath.Join(opts.ArchiveOutputDir,
			fmt.Sprintf("fleet-export-%s.zip", time.Now().UTC().Format("20060102-150405")))
		if err := PackArchive(outPath, records, archiveVehicles); err != nil {
			return nil, &StorageFault{Op: "archive pack", Err: err}
		}
		result.ArchivePath = outPath
	} else {
		result.Records = records
	}

	result.Success = true
	stats.errs = len(result.Errors)
	result.Stats = stats.snapshot()

	logging.Info("Export run finished",
		"owner_id", opts.OwnerID,
		"all_owners", opts.AllOwners,
		"exported", result.VehiclesExported,
		"archive", result.ArchivePath != "",
	)
	return result, nil
}

func (e *Exporter) fetchIDs(ctx context.Context, opts ExportOptions) ([]string, error) {
	q := e.db.WithContext(ctx).Model(&gormModels.Vehicle{}).Order("created_at, id")
	if !opts.AllOwners {
		q = q.Where("owner_id = ?", opts.OwnerID)
	}

	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (e *Exporter) fetchBatch(ctx context.Context, ids []string) ([]gormModels.Vehicle, error) {
	var vehicles []gormModels.Vehicle
	err := e.db.WithContext(ctx).
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
		Where("id IN ?", ids).
		Order("created_at, id").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}
