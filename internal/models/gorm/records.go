package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuelRecord struct {
	ID           string     `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID    string     `gorm:"column:vehicle_id;type:uuid;index;not null"`
	Date         *time.Time `gorm:"column:date"`
	Mileage      *int       `gorm:"column:mileage"`
	Litres       *float64   `gorm:"column:litres"`
	CostPerLitre *float64   `gorm:"column:cost_per_litre"`
	TotalCost    *float64   `gorm:"column:total_cost"`
	Station      *string    `gorm:"column:station"`
	FullTank     bool       `gorm:"column:full_tank;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (FuelRecord) TableName() string {
	return "fuel_records"
}

func (r *FuelRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type Part struct {
	ID           string     `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID    string     `gorm:"column:vehicle_id;type:uuid;index;not null"`
	CategoryID   *string    `gorm:"column:category_id;type:uuid"`
	Name         string     `gorm:"column:name;not null"`
	PartNumber   *string    `gorm:"column:part_number"`
	Cost         *float64   `gorm:"column:cost"`
	PurchaseDate *time.Time `gorm:"column:purchase_date"`
	Mileage      *int       `gorm:"column:mileage"`
	Notes        *string    `gorm:"column:notes"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`

	Category *PartCategory `gorm:"foreignKey:CategoryID"`
}

func (Part) TableName() string {
	return "parts"
}

func (p *Part) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Consumable struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID string     `gorm:"column:vehicle_id;type:uuid;index;not null"`
	TypeID    *string    `gorm:"column:type_id;type:uuid"`
	Brand     *string    `gorm:"column:brand"`
	Quantity  *float64   `gorm:"column:quantity"`
	Cost      *float64   `gorm:"column:cost"`
	Date      *time.Time `gorm:"column:date"`
	Notes     *string    `gorm:"column:notes"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`

	Type *ConsumableType `gorm:"foreignKey:TypeID"`
}

func (Consumable) TableName() string {
	return "consumables"
}

func (c *Consumable) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ServiceRecord struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID string     `gorm:"column:vehicle_id;type:uuid;index;not null"`
	Date      *time.Time `gorm:"column:date"`
	Mileage   *int       `gorm:"column:mileage"`
	Garage    *string    `gorm:"column:garage"`
	TotalCost *float64   `gorm:"column:total_cost"`
	Notes     *string    `gorm:"column:notes"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`

	Items []ServiceItem `gorm:"foreignKey:ServiceRecordID"`
}

func (ServiceRecord) TableName() string {
	return "service_records"
}

func (r *ServiceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type ServiceItem struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid"`
	ServiceRecordID string    `gorm:"column:service_record_id;type:uuid;index;not null"`
	Description     string    `gorm:"column:description;not null"`
	Cost            *float64  `gorm:"column:cost"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ServiceItem) TableName() string {
	return "service_items"
}

func (i *ServiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type MOTRecord struct {
	ID            string     `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID     string     `gorm:"column:vehicle_id;type:uuid;index;not null"`
	TestDate      *time.Time `gorm:"column:test_date"`
	ExpiryDate    *time.Time `gorm:"column:expiry_date"`
	Result        *string    `gorm:"column:result"`
	TestNumber    *string    `gorm:"column:test_number"`
	Mileage       *int       `gorm:"column:mileage"`
	AdvisoryNotes *string    `gorm:"column:advisory_notes"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (MOTRecord) TableName() string {
	return "mot_records"
}

func (r *MOTRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type RoadTaxRecord struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID string     `gorm:"column:vehicle_id;type:uuid;index;not null"`
	ValidFrom *time.Time `gorm:"column:valid_from"`
	ValidTo   *time.Time `gorm:"column:valid_to"`
	Cost      *float64   `gorm:"column:cost"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (RoadTaxRecord) TableName() string {
	return "road_tax_records"
}

func (r *RoadTaxRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// InsurancePolicy is shared between vehicles (fleet policies), hence the
// many-to-many relation back to vehicles.
type InsurancePolicy struct {
	ID           string     `gorm:"column:id;primaryKey;type:uuid"`
	Provider     string     `gorm:"column:provider;not null"`
	PolicyNumber *string    `gorm:"column:policy_number"`
	StartDate    *time.Time `gorm:"column:start_date"`
	EndDate      *time.Time `gorm:"column:end_date"`
	AnnualCost   *float64   `gorm:"column:annual_cost"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`

	Vehicles []Vehicle `gorm:"many2many:vehicle_insurance_policies"`
}

func (InsurancePolicy) TableName() string {
	return "insurance_policies"
}

func (p *InsurancePolicy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type VehicleSpecification struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID    string    `gorm:"column:vehicle_id;type:uuid;uniqueIndex;not null"`
	EngineSize   *string   `gorm:"column:engine_size"`
	FuelType     *string   `gorm:"column:fuel_type"`
	Transmission *string   `gorm:"column:transmission"`
	Doors        *int      `gorm:"column:doors"`
	Seats        *int      `gorm:"column:seats"`
	Colour       *string   `gorm:"column:colour"`
	KerbWeightKg *int      `gorm:"column:kerb_weight_kg"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VehicleSpecification) TableName() string {
	return "vehicle_specifications"
}

func (s *VehicleSpecification) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
