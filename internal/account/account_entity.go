package account

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type Account struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement"`
	Email     string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	Password  string         `gorm:"column:password;type:text;not null"`
	Role      string         `gorm:"column:role;type:varchar(20);not null;default:'STAFF'"`
	IsActive  bool           `gorm:"column:is_active;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// IsValidRole reports whether v names one of the two supported roles.
func IsValidRole(v string) bool {
	return v == RoleAdmin || v == RoleStaff
}
