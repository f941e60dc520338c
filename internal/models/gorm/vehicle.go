package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is the aggregate root. All owned collections are created and torn
// down with it; insurance policies are shared and linked via a join table.
type Vehicle struct {
	ID                 string     `gorm:"column:id;primaryKey;type:uuid"`
	OwnerID            string     `gorm:"column:owner_id;type:uuid;index;uniqueIndex:idx_vehicles_owner_registration;not null"`
	RegistrationNumber *string    `gorm:"column:registration_number;uniqueIndex:idx_vehicles_owner_registration"`
	Name               *string    `gorm:"column:name"`
	VehicleTypeID      string     `gorm:"column:vehicle_type_id;type:uuid;not null"`
	MakeID             *string    `gorm:"column:make_id;type:uuid"`
	ModelID            *string    `gorm:"column:model_id;type:uuid"`
	Year               *int       `gorm:"column:year"`
	VIN                *string    `gorm:"column:vin"`
	PurchaseCost       *float64   `gorm:"column:purchase_cost"`
	PurchaseDate       *time.Time `gorm:"column:purchase_date"`
	PurchaseMileage    *int       `gorm:"column:purchase_mileage"`
	Status             string     `gorm:"column:status;default:active"`
	TaxExempt          bool       `gorm:"column:tax_exempt;default:false"`
	MOTExempt          bool       `gorm:"column:mot_exempt;default:false"`
	ImportTag          *string    `gorm:"column:import_tag"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	VehicleType       VehicleType           `gorm:"foreignKey:VehicleTypeID"`
	Make              *VehicleMake          `gorm:"foreignKey:MakeID"`
	Model             *VehicleModel         `gorm:"foreignKey:ModelID"`
	FuelRecords       []FuelRecord          `gorm:"foreignKey:VehicleID"`
	Parts             []Part                `gorm:"foreignKey:VehicleID"`
	Consumables       []Consumable          `gorm:"foreignKey:VehicleID"`
	ServiceRecords    []ServiceRecord       `gorm:"foreignKey:VehicleID"`
	MOTRecords        []MOTRecord           `gorm:"foreignKey:VehicleID"`
	RoadTaxRecords    []RoadTaxRecord       `gorm:"foreignKey:VehicleID"`
	Images            []VehicleImage        `gorm:"foreignKey:VehicleID"`
	Attachments       []VehicleAttachment   `gorm:"foreignKey:VehicleID"`
	Specification     *VehicleSpecification `gorm:"foreignKey:VehicleID"`
	InsurancePolicies []InsurancePolicy     `gorm:"many2many:vehicle_insurance_policies"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
