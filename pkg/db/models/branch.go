package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is one tenant of the application: a sales/installation location
// with its own users, teams, customers and measurement records.
type Branch struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Slug       string    `gorm:"column:slug;not null;uniqueIndex"`
	Street     string    `gorm:"column:street;not null"`
	PostalCode string    `gorm:"column:postal_code;not null"`
	City       string    `gorm:"column:city;not null"`
	Phone      *string   `gorm:"column:phone"`
	Email      *string   `gorm:"column:email"`
	LogoURL    *string   `gorm:"column:logo_url"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
