package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is the priced snapshot persisted when a measurement's quote is
// submitted. Totals are stored alongside the lines so documents rendered
// later always show exactly what was submitted.
type Quote struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MeasurementID     uuid.UUID       `gorm:"column:measurement_id;type:uuid;not null;uniqueIndex"`
	BranchID          uuid.UUID       `gorm:"column:branch_id;type:uuid;not null;index"`
	Subtotal          decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	ItemDiscounts     decimal.Decimal `gorm:"column:item_discounts;type:numeric(12,2);not null"`
	TotalDiscount     decimal.Decimal `gorm:"column:total_discount;type:numeric(12,2);not null"`
	Total             decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	ShowItemDiscounts bool            `gorm:"column:show_item_discounts;not null"`
	SubmittedByID     *uuid.UUID      `gorm:"column:submitted_by_id;type:uuid"`
	SubmittedAt       time.Time       `gorm:"column:submitted_at;not null"`
	Items             []QuoteItem     `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Extras            []QuoteExtra    `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// QuoteItem is one priced product line. Raw dimensions are kept next to the
// grid-rounded pair they resolved to at submission time.
type QuoteItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID        uuid.UUID       `gorm:"column:quote_id;type:uuid;not null;index"`
	ProductSlug    string          `gorm:"column:product_slug;not null"`
	ProductName    string          `gorm:"column:product_name;not null"`
	RawWidth       float64         `gorm:"column:raw_width;type:numeric(8,1);not null"`
	RawDepth       float64         `gorm:"column:raw_depth;type:numeric(8,1);not null"`
	RoundedWidth   int             `gorm:"column:rounded_width;not null"`
	RoundedDepth   int             `gorm:"column:rounded_depth;not null"`
	Quantity       int             `gorm:"column:quantity;not null;default:1"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	ItemDiscount   decimal.Decimal `gorm:"column:item_discount;type:numeric(12,2);not null;default:0"`
	PriceAvailable bool            `gorm:"column:price_available;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// QuoteExtra is a flat-fee addendum (e.g. installation) with no quantity
// and no discount.
type QuoteExtra struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID     uuid.UUID       `gorm:"column:quote_id;type:uuid;not null;index"`
	Description string          `gorm:"column:description;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
