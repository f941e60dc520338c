package constants

type APIStatus string

const (
	APIStatusOk    APIStatus = "success"
	APIStatusError APIStatus = "error"
)

type CachePrefix string

const (
	CachePrefixVehicleList CachePrefix = "vehicle_list"
	CachePrefixFleetStats  CachePrefix = "fleet_stats"
)

const (
	// VehicleStatusActive is the default status applied to imported vehicles
	// that do not carry one.
	VehicleStatusActive   = "active"
	VehicleStatusSold     = "sold"
	VehicleStatusScrapped = "scrapped"
)

const (
	// ExportBatchSize is the number of vehicles materialized per batch during
	// a bulk export. Keeps the working set bounded for large fleets.
	ExportBatchSize = 50

	// ImportRunStatusCompleted and friends are recorded in import_histories.
	ImportRunStatusCompleted = "completed"
	ImportRunStatusDryRun    = "dry_run"
	ImportRunStatusFailed    = "failed"
)
