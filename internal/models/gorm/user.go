package gorm

import (
	"time"

	"openfleet/fleetkeeper/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string             `gorm:"column:id;primaryKey;type:uuid"`
	Email     string             `gorm:"column:email;uniqueIndex;not null"`
	Name      *string            `gorm:"column:name"`
	Role      constants.UserRole `gorm:"column:role;default:OWNER"`
	IsActive  bool               `gorm:"column:is_active;default:true"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
