package constants

const (
	GetStatusByApiKey = `
	SELECT id, user_id, status FROM api_keys WHERE id = $1
	`

	GetUserById = `
	SELECT * FROM users WHERE id = $1
	`

	GetFleetStatsByOwner = `
	SELECT COUNT(*)                              AS vehicle_count,
	       COALESCE(SUM(purchase_cost), 0)      AS total_purchase_cost,
	       COUNT(DISTINCT vehicle_type_id)      AS type_count
	FROM vehicles WHERE owner_id = $1
	`

	GetFleetStatsAll = `
	SELECT COUNT(*)                              AS vehicle_count,
	       COALESCE(SUM(purchase_cost), 0)      AS total_purchase_cost,
	       COUNT(DISTINCT vehicle_type_id)      AS type_count
	FROM vehicles
	`
)
