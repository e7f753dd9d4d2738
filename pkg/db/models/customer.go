package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the person or company a measurement record belongs to.
type Customer struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BranchID   uuid.UUID `gorm:"column:branch_id;type:uuid;not null;index"`
	Name       string    `gorm:"column:name;not null"`
	Email      *string   `gorm:"column:email"`
	Phone      *string   `gorm:"column:phone"`
	Street     string    `gorm:"column:street;not null"`
	PostalCode string    `gorm:"column:postal_code;not null"`
	City       string    `gorm:"column:city;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
