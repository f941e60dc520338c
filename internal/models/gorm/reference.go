package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reference entities are shared open-vocabulary lookup tables. They are never
// owned by a single vehicle and are created lazily on first unresolved use.

type VehicleType struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VehicleType) TableName() string {
	return "vehicle_types"
}

func (t *VehicleType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// VehicleMake is scoped to a vehicle type ("Toyota" the car maker and
// "Toyota" the forklift maker are distinct rows).
type VehicleMake struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid"`
	VehicleTypeID string    `gorm:"column:vehicle_type_id;type:uuid;index:idx_makes_type_name;not null"`
	Name          string    `gorm:"column:name;index:idx_makes_type_name;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`

	VehicleType VehicleType `gorm:"foreignKey:VehicleTypeID"`
}

func (VehicleMake) TableName() string {
	return "vehicle_makes"
}

func (m *VehicleMake) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// VehicleModel is scoped to a make, with an optional valid year range.
type VehicleModel struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	MakeID    string    `gorm:"column:make_id;type:uuid;index:idx_models_make_name;not null"`
	Name      string    `gorm:"column:name;index:idx_models_make_name;not null"`
	YearFrom  *int      `gorm:"column:year_from"`
	YearTo    *int      `gorm:"column:year_to"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Make VehicleMake `gorm:"foreignKey:MakeID"`
}

func (VehicleModel) TableName() string {
	return "vehicle_models"
}

func (m *VehicleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type ConsumableType struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ConsumableType) TableName() string {
	return "consumable_types"
}

func (t *ConsumableType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type PartCategory struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PartCategory) TableName() string {
	return "part_categories"
}

func (c *PartCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
