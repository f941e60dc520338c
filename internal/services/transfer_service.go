package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"openfleet/fleetkeeper/internal/constants"
	"openfleet/fleetkeeper/internal/db/repositories"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/metrics"
	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"
	"openfleet/fleetkeeper/internal/pipeline"

	"gorm.io/gorm"
)

// TransferService is the HTTP layer's entry point into the import/export
// pipeline. It converts archive/input faults into unsuccessful results,
// records run history, and feeds the pipeline metrics; systemic faults
// propagate to the caller as errors.
type TransferService struct {
	importer   *pipeline.Importer
	exporter   *pipeline.Exporter
	history    *repositories.ImportHistoryRepo
	metricsReg *metrics.MetricsRegistry
	scratchDir string
	exportDir  string
}

func NewTransferService(db *gorm.DB, history *repositories.ImportHistoryRepo, metricsReg *metrics.MetricsRegistry, storageDir, scratchDir, exportDir string) *TransferService {
	return &TransferService{
		importer:   pipeline.NewImporter(db, storageDir),
		exporter:   pipeline.NewExporter(db),
		history:    history,
		metricsReg: metricsReg,
		scratchDir: scratchDir,
		exportDir:  exportDir,
	}
}

// ImportRecords runs a JSON-mode import.
func (svc *TransferService) ImportRecords(ctx context.Context, records []dtos.VehicleRecord, opts pipeline.ImportOptions) (*dtos.ImportResult, error) {
	result, err := svc.importer.Run(ctx, records, opts)
	if err != nil {
		svc.recordRun(ctx, opts, nil)
		return nil, err
	}

	svc.recordRun(ctx, opts, result)
	return result, nil
}

// ImportArchive unpacks raw archive bytes and runs the import. A container
// that cannot be used at all (corrupt zip, missing manifest) comes back as
// an unsuccessful result rather than an error, since nothing was touched.
func (svc *TransferService) ImportArchive(ctx context.Context, data []byte, opts pipeline.ImportOptions) (*dtos.ImportResult, error) {
	result, err := svc.importer.RunArchive(ctx, data, svc.scratchDir, opts)
	if err != nil {
		var formatErr *pipeline.ArchiveFormatError
		if errors.As(err, &formatErr) {
			return &dtos.ImportResult{
				Success: false,
				Errors:  []string{formatErr.Error()},
				Stats:   map[string]float64{dtos.StatItems: 0, dtos.StatErrors: 1},
			}, nil
		}
		svc.recordRun(ctx, opts, nil)
		return nil, err
	}

	svc.recordRun(ctx, opts, result)
	return result, nil
}

// Export runs an export in JSON or archive mode.
func (svc *TransferService) Export(ctx context.Context, opts pipeline.ExportOptions) (*dtos.ExportResult, error) {
	result, err := svc.exporter.Run(ctx, opts)
	if err != nil {
		svc.observeRun("export", "fault", nil)
		return nil, err
	}

	svc.observeRun("export", "ok", result.Stats)
	if svc.metricsReg != nil {
		svc.metricsReg.VehiclesExportedTotal.Add(float64(result.VehiclesExported))
	}
	return result, nil
}

// ExportDir is the directory packaged archives are written to.
func (svc *TransferService) ExportDir() string {
	return svc.exportDir
}

func (svc *TransferService) recordRun(ctx context.Context, opts pipeline.ImportOptions, result *dtos.ImportResult) {
	outcome := "fault"
	status := constants.ImportRunStatusFailed
	var imported, errCount int
	var seconds float64

	if result != nil {
		outcome = "ok"
		status = constants.ImportRunStatusCompleted
		if opts.DryRun {
			status = constants.ImportRunStatusDryRun
		}
		imported = result.VehiclesImported
		errCount = len(result.Errors)
		seconds = result.Stats[dtos.StatSeconds]

		if svc.metricsReg != nil {
			svc.metricsReg.VehiclesImportedTotal.Add(float64(imported))
			svc.metricsReg.PipelineItemErrorsTotal.Add(float64(errCount))
		}
	}
	svc.observeRun("import", outcome, map[string]float64{dtos.StatSeconds: seconds})

	if svc.history == nil {
		return
	}

	var tag *string
	if opts.SourceTag != "" {
		tag = &opts.SourceTag
	}

	entry := &gormModels.ImportHistory{
		OwnerID:          opts.OwnerID,
		SourceTag:        tag,
		Status:           status,
		VehiclesImported: imported,
		ErrorCount:       errCount,
		DurationSeconds:  seconds,
	}
	if err := svc.history.Record(ctx, entry); err != nil {
		logging.Warn("Failed to record import history", "error", err.Error())
	}
}

func (svc *TransferService) observeRun(direction, outcome string, stats map[string]float64) {
	if svc.metricsReg == nil {
		return
	}
	svc.metricsReg.PipelineRunsTotal.WithLabelValues(direction, outcome).Inc()
	if stats != nil {
		svc.metricsReg.PipelineDuration.WithLabelValues(direction).Observe(stats[dtos.StatSeconds])
	}
}

// PruneExports removes packaged archives older than the given cutoff. Used
// by the background sweeper.
func (svc *TransferService) PruneExports(cutoffSeconds float64) {
	entries, err := os.ReadDir(svc.exportDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || info.IsDir() {
			continue
		}
		if time.Since(info.ModTime()).Seconds() > cutoffSeconds {
			_ = os.Remove(filepath.Join(svc.exportDir, entry.Name()))
		}
	}
}
