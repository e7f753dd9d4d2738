package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
)

// ProductSummary is the list-view projection of a catalog product.
type ProductSummary struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductDetail carries everything the measurement form needs to price and
// describe a product, including the full dimension matrix.
type ProductDetail struct {
	ID              uuid.UUID             `json:"id"`
	Slug            string                `json:"slug"`
	Name            string                `json:"name"`
	IsActive        bool                  `json:"is_active"`
	DimensionMatrix types.DimensionMatrix `json:"dimension_matrix"`
	SpecFields      json.RawMessage       `json:"spec_fields,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func toSummary(p models.Product) ProductSummary {
	return ProductSummary{
		ID:        p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		IsActive:  p.IsActive,
		UpdatedAt: p.UpdatedAt,
	}
}

func toDetail(p *models.Product) *ProductDetail {
	return &ProductDetail{
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		IsActive:        p.IsActive,
		DimensionMatrix: p.DimensionMatrix,
		SpecFields:      p.SpecFields,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
