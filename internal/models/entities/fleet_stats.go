package entities

type FleetStats struct {
	VehicleCount      int     `db:"vehicle_count" json:"vehicle_count"`
	TotalPurchaseCost float64 `db:"total_purchase_cost" json:"total_purchase_cost"`
	TypeCount         int     `db:"type_count" json:"type_count"`
}
