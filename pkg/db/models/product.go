package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
)

// Product is one catalog entry (awning model, patio roof, ...) together with
// its sparse dimension/price matrix and the product-specific specification
// fields shown on the measurement form.
type Product struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug            string                `gorm:"column:slug;not null;uniqueIndex"`
	Name            string                `gorm:"column:name;not null"`
	// No gorm-side default: with one declared, gorm omits zero values on
	// insert and a retired product would round-trip back as active. The
	// column default lives in the migration.
	IsActive        bool                  `gorm:"column:is_active;not null"`
	DimensionMatrix types.DimensionMatrix `gorm:"column:dimension_matrix;type:jsonb;not null"`
	SpecFields      json.RawMessage       `gorm:"column:spec_fields;type:jsonb"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
