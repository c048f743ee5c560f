package request

import (
	"time"
)

type Request struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Number      string    `gorm:"column:number;type:varchar(20);not null;uniqueIndex"`
	EmployeeID  uint      `gorm:"column:employee_id;not null;index"`
	Type        string    `gorm:"column:type;type:varchar(50);not null"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:'PENDING'"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Items    []RequestItem    `gorm:"foreignKey:RequestID"`
	Employee *RequestEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

type RequestItem struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID uint   `gorm:"column:request_id;not null;index"`
	Name      string `gorm:"column:name;type:varchar(255);not null"`
	Quantity  int    `gorm:"column:quantity;type:int;not null;default:1"`
	Note      string `gorm:"column:note;type:text"`
}

// RequestEmployee is the minimal join projection of an employee row,
// carried so listings can show the owner without importing the employee
// package's full entity.
type RequestEmployee struct {
	ID        uint            `gorm:"primaryKey"`
	AccountID uint            `gorm:"column:account_id"`
	FullName  string          `gorm:"column:full_name"`
	Account   *RequestAccount `gorm:"foreignKey:AccountID;references:ID"`
}

func (RequestEmployee) TableName() string {
	return "employees"
}

type RequestAccount struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"column:email"`
	Role  string `gorm:"column:role"`
}

func (RequestAccount) TableName() string {
	return "accounts"
}
