package pipeline

import (
	"context"
	"errors"
	"fmt"

	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/models/dtos"

	"gorm.io/gorm"
)

// Importer owns the transaction boundary and result accounting for the
// import direction. One transaction per run; a run participates in an
// already-active transaction (gorm savepoints) rather than nesting.
type Importer struct {
	db         *gorm.DB
	storageDir string
}

func NewImporter(db *gorm.DB, storageDir string) *Importer {
	return &Importer{db: db, storageDir: storageDir}
}

// ImportOptions scopes one run.
type ImportOptions struct {
	OwnerID string
	// AllOwners widens the duplicate index to the whole system; only set for
	// administrator callers.
	AllOwners bool
	SourceTag string
	// DryRun performs every step except the final commit while still
	// producing accurate statistics.
	DryRun bool
	// PayloadDir is the extracted files/ tree of an archive import.
	PayloadDir string
}

// errDryRunRollback forces the surrounding transaction to roll back after a
// dry run has done all its work.
var errDryRunRollback = errors.New("dry run: discarding transaction")

// Run processes candidate records in submission order. Per-item validation
// and duplicate findings accumulate into the result; an infrastructure
// fault rolls back everything written in this run and is returned as a
// *StorageFault.
func (imp *Importer) Run(ctx context.Context, records []dtos.VehicleRecord, opts ImportOptions) (*dtos.ImportResult, error) {
	stats := newRunStats()
	result := &dtos.ImportResult{DryRun: opts.DryRun, Errors: []string{}}

	if len(records) == 0 {
		empty := &EmptyInputError{}
		result.Errors = append(result.Errors, empty.Error())
		result.Stats = stats.snapshot()
		return result, nil
	}

	stats.items = len(records)

	dupIndex, err := LoadDuplicateIndex(ctx, imp.db, opts.OwnerID, opts.AllOwners)
	if err != nil {
		return nil, &StorageFault{Op: "duplicate index load", Err: err}
	}

	var sourceTag *string
	if opts.SourceTag != "" {
		sourceTag = &opts.SourceTag
	}

	imported := 0
	txErr := imp.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs := NewReferenceResolver(tx)
		builder := NewGraphBuilder(refs, imp.storageDir, opts.PayloadDir)

		for i := range records {
			rec := &records[i]
			key := NormalizeRegistration(rec.RegistrationNumber)
			if dupIndex.IsDuplicate(key) {
				dupErr := &DuplicateError{Registration: key}
				result.Errors = append(result.Errors, dupErr.Error())
				continue
			}

			vehicle, err := builder.BuildVehicle(ctx, rec, opts.OwnerID)
			if err != nil {
				var verr *ValidationError
				if errors.As(err, &verr) {
					result.Errors = append(result.Errors, verr.Error())
					continue
				}
				return &StorageFault{Op: "vehicle build", Err: err}
			}

			vehicle.ImportTag = sourceTag
			if err := tx.Create(vehicle).Error; err != nil {
				return &StorageFault{Op: "vehicle persist", Err: err}
			}

			dupIndex.Add(key, vehicle.ID)
			imported++
		}

		if opts.DryRun {
			return errDryRunRollback
		}
		return nil
	})

	if txErr != nil && !errors.Is(txErr, errDryRunRollback) {
		var fault *StorageFault
		if errors.As(txErr, &fault) {
			return nil, fault
		}
		return nil, &StorageFault{Op: "commit", Err: txErr}
	}

	// A run that skipped some items but landed others still succeeds; a run
	// where every single candidate was rejected does not.
	result.Success = imported > 0 || len(result.Errors) == 0
	result.VehiclesImported = imported
	stats.errs = len(result.Errors)
	result.Stats = stats.snapshot()

	logging.Info("Import run finished",
		"owner_id", opts.OwnerID,
		"imported", imported,
		"errors", len(result.Errors),
		"dry_run", opts.DryRun,
	)
	return result, nil
}

// RunArchive unpacks raw archive bytes into a private scratch directory,
// runs the import against the manifest, and removes the scratch directory
// whatever the outcome.
func (imp *Importer) RunArchive(ctx context.Context, data []byte, scratchParent string, opts ImportOptions) (*dtos.ImportResult, error) {
	unpacked, err := UnpackArchive(data, scratchParent)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := unpacked.Close(); cerr != nil {
			logging.Warn("Failed to remove scratch dir", "dir", unpacked.Root, "error", cerr.Error())
		}
	}()

	opts.PayloadDir = unpacked.PayloadDir()
	res, err := imp.Run(ctx, unpacked.Records, opts)
	if err != nil {
		return nil, fmt.Errorf("archive import failed: %w", err)
	}
	return res, nil
}
