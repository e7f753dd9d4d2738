package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
)

// DraftItemInput is one product line as entered on the quote form. Raw
// dimensions are kept as entered; rounding happens on every pricing pass.
type DraftItemInput struct {
	ProductSlug  string          `json:"product_slug" validate:"required"`
	Width        float64         `json:"width" validate:"gt=0"`
	Depth        float64         `json:"depth" validate:"gt=0"`
	Quantity     int             `json:"quantity" validate:"gte=1"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
}

// DraftExtraInput is one flat-fee addendum as entered.
type DraftExtraInput struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// DraftInput is the full editable state of a quote draft.
type DraftInput struct {
	Items             []DraftItemInput  `json:"items" validate:"dive"`
	Extras            []DraftExtraInput `json:"extras"`
	TotalDiscount     decimal.Decimal   `json:"total_discount"`
	ShowItemDiscounts bool              `json:"show_item_discounts"`
}

// PricedItem is one resolved line in a pricing response.
type PricedItem struct {
	ProductSlug  string          `json:"product_slug"`
	ProductName  string          `json:"product_name"`
	RawWidth     float64         `json:"raw_width"`
	RawDepth     float64         `json:"raw_depth"`
	RoundedWidth int             `json:"rounded_width"`
	RoundedDepth int             `json:"rounded_depth"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Available    bool            `json:"available"`
}

// PricedQuote is the full pricing response for a draft.
type PricedQuote struct {
	Items             []PricedItem      `json:"items"`
	Extras            []DraftExtraInput `json:"extras"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	ItemDiscounts     decimal.Decimal   `json:"item_discounts"`
	TotalDiscount     decimal.Decimal   `json:"total_discount"`
	Total             decimal.Decimal   `json:"total"`
	ShowItemDiscounts bool              `json:"show_item_discounts"`
	Warnings          []string          `json:"warnings,omitempty"`
}

// QuoteItemDTO is one persisted snapshot line.
type QuoteItemDTO struct {
	ProductSlug  string          `json:"product_slug"`
	ProductName  string          `json:"product_name"`
	RawWidth     float64         `json:"raw_width"`
	RawDepth     float64         `json:"raw_depth"`
	RoundedWidth int             `json:"rounded_width"`
	RoundedDepth int             `json:"rounded_depth"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
}

// QuoteExtraDTO is one persisted extra.
type QuoteExtraDTO struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// QuoteDTO is the persisted quote snapshot.
type QuoteDTO struct {
	ID                uuid.UUID       `json:"id"`
	MeasurementID     uuid.UUID       `json:"measurement_id"`
	BranchID          uuid.UUID       `json:"branch_id"`
	Items             []QuoteItemDTO  `json:"items"`
	Extras            []QuoteExtraDTO `json:"extras"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ItemDiscounts     decimal.Decimal `json:"item_discounts"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	Total             decimal.Decimal `json:"total"`
	ShowItemDiscounts bool            `json:"show_item_discounts"`
	SubmittedAt       time.Time       `json:"submitted_at"`
}

func toQuoteDTO(q *models.Quote) *QuoteDTO {
	dto := &QuoteDTO{
		ID:                q.ID,
		MeasurementID:     q.MeasurementID,
		BranchID:          q.BranchID,
		Subtotal:          q.Subtotal,
		ItemDiscounts:     q.ItemDiscounts,
		TotalDiscount:     q.TotalDiscount,
		Total:             q.Total,
		ShowItemDiscounts: q.ShowItemDiscounts,
		SubmittedAt:       q.SubmittedAt,
	}
	for _, item := range q.Items {
		dto.Items = append(dto.Items, QuoteItemDTO{
			ProductSlug:  item.ProductSlug,
			ProductName:  item.ProductName,
			RawWidth:     item.RawWidth,
			RawDepth:     item.RawDepth,
			RoundedWidth: item.RoundedWidth,
			RoundedDepth: item.RoundedDepth,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			ItemDiscount: item.ItemDiscount,
		})
	}
	for _, extra := range q.Extras {
		dto.Extras = append(dto.Extras, QuoteExtraDTO{
			Description: extra.Description,
			Price:       extra.Price,
		})
	}
	return dto
}
