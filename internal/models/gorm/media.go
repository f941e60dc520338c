package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleImage and VehicleAttachment carry metadata for binary payloads held
// in live storage. FilePath may be empty when a record was imported from an
// archive whose payload was missing (metadata-only degrade).

type VehicleImage struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID string    `gorm:"column:vehicle_id;type:uuid;index;not null"`
	FileName  string    `gorm:"column:file_name;not null"`
	FilePath  string    `gorm:"column:file_path"`
	Caption   *string   `gorm:"column:caption"`
	IsPrimary bool      `gorm:"column:is_primary;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VehicleImage) TableName() string {
	return "vehicle_images"
}

func (i *VehicleImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type VehicleAttachment struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	VehicleID   string    `gorm:"column:vehicle_id;type:uuid;index;not null"`
	FileName    string    `gorm:"column:file_name;not null"`
	FilePath    string    `gorm:"column:file_path"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VehicleAttachment) TableName() string {
	return "vehicle_attachments"
}

func (a *VehicleAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
