package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApiKey rows are read over sqlx on the hot auth path; this model exists for
// schema migration and key provisioning.
type ApiKey struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID    string    `gorm:"column:user_id;type:uuid;index;not null"`
	Status    bool      `gorm:"column:status;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}

func (k *ApiKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}
