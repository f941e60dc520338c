package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportHistory records one pipeline run per row for auditing.
type ImportHistory struct {
	ID               string    `gorm:"column:id;primaryKey;type:uuid"`
	OwnerID          string    `gorm:"column:owner_id;type:uuid;index;not null"`
	SourceTag        *string   `gorm:"column:source_tag"`
	Status           string    `gorm:"column:status;not null"`
	VehiclesImported int       `gorm:"column:vehicles_imported"`
	ErrorCount       int       `gorm:"column:error_count"`
	DurationSeconds  float64   `gorm:"column:duration_seconds"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ImportHistory) TableName() string {
	return "import_histories"
}

func (h *ImportHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
