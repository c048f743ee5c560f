package employee

import (
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement"`
	AccountID uint           `gorm:"column:account_id;not null;uniqueIndex"`
	FullName  string         `gorm:"column:full_name;type:varchar(255);not null"`
	Email     string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone     string         `gorm:"column:phone;type:varchar(30)"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
