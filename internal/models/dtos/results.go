package dtos

// Statistics keys present in every pipeline result, success or failure.
const (
	StatItems        = "items"
	StatErrors       = "errors"
	StatSeconds      = "seconds"
	StatPeakMemoryMB = "peak_memory_mb"
)

// ImportResult describes the outcome of one import run. Success true with a
// non-empty error list means the run completed and some items were skipped.
type ImportResult struct {
	Success          bool               `json:"success"`
	VehiclesImported int                `json:"vehiclesImported"`
	DryRun           bool               `json:"dryRun,omitempty"`
	Errors           []string           `json:"errors"`
	Stats            map[string]float64 `json:"stats"`
}

// ExportResult describes the outcome of one export run. Records is populated
// in JSON mode; ArchivePath in archive mode.
type ExportResult struct {
	Success          bool               `json:"success"`
	VehiclesExported int                `json:"vehiclesExported"`
	Errors           []string           `json:"errors"`
	Records          []VehicleRecord    `json:"records,omitempty"`
	ArchivePath      string             `json:"archivePath,omitempty"`
	Stats            map[string]float64 `json:"stats"`
}
