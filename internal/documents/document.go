package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fuatkeles/aufmass-app-sub001/internal/branches"
	"github.com/fuatkeles/aufmass-app-sub001/internal/measurements"
	"github.com/fuatkeles/aufmass-app-sub001/internal/pricing"
	"github.com/fuatkeles/aufmass-app-sub001/internal/quotes"
)

// DocumentLine is one item row as the PDF renderer expects it: gross line
// total, optional discount with its derived percentage, and the net total.
type DocumentLine struct {
	ProductName     string          `json:"product_name"`
	Dimensions      string          `json:"dimensions"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Discount        decimal.Decimal `json:"discount"`
	DiscountPercent int             `json:"discount_percent"`
	NetTotal        decimal.Decimal `json:"net_total"`
}

// DocumentExtra is one flat-fee row.
type DocumentExtra struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// DocumentHeader carries the addressing block.
type DocumentHeader struct {
	BranchName    string `json:"branch_name"`
	BranchAddress string `json:"branch_address"`
	BranchPhone   string `json:"branch_phone,omitempty"`
	BranchEmail   string `json:"branch_email,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerAddr  string `json:"customer_address"`
}

// QuoteDocument is the full payload handed to the PDF renderer.
type QuoteDocument struct {
	Header               DocumentHeader  `json:"header"`
	Lines                []DocumentLine  `json:"lines"`
	Extras               []DocumentExtra `json:"extras,omitempty"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	ItemDiscounts        decimal.Decimal `json:"item_discounts"`
	TotalDiscount        decimal.Decimal `json:"total_discount"`
	TotalDiscountPercent int             `json:"total_discount_percent"`
	Total                decimal.Decimal `json:"total"`
	ShowItemDiscounts    bool            `json:"show_item_discounts"`
	SubmittedAt          time.Time       `json:"submitted_at"`
}

type quoteLoader interface {
	GetForMeasurement(ctx context.Context, branchID, measurementID uuid.UUID) (*quotes.QuoteDTO, error)
}

type measurementLoader interface {
	Get(ctx context.Context, branchID, id uuid.UUID) (*measurements.MeasurementDTO, error)
}

type branchLoader interface {
	GetBranch(ctx context.Context, branchID uuid.UUID) (*branches.BranchDTO, error)
}

// Builder assembles quote documents from submitted snapshots.
type Builder struct {
	quotes       quoteLoader
	measurements measurementLoader
	branches     branchLoader
}

// NewBuilder constructs a document builder.
func NewBuilder(quotes quoteLoader, measurements measurementLoader, branches branchLoader) (*Builder, error) {
	if quotes == nil {
		return nil, fmt.Errorf("quote loader required")
	}
	if measurements == nil {
		return nil, fmt.Errorf("measurement loader required")
	}
	if branches == nil {
		return nil, fmt.Errorf("branch loader required")
	}
	return &Builder{quotes: quotes, measurements: measurements, branches: branches}, nil
}

// BuildQuoteDocument produces the renderer payload for a submitted quote.
// Percentages are derived from the stored amounts on every call.
func (b *Builder) BuildQuoteDocument(ctx context.Context, branchID, measurementID uuid.UUID) (*QuoteDocument, error) {
	quote, err := b.quotes.GetForMeasurement(ctx, branchID, measurementID)
	if err != nil {
		return nil, err
	}
	measurement, err := b.measurements.Get(ctx, branchID, measurementID)
	if err != nil {
		return nil, err
	}
	branch, err := b.branches.GetBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	doc := &QuoteDocument{
		Header:            buildHeader(branch, measurement),
		Subtotal:          quote.Subtotal,
		ItemDiscounts:     quote.ItemDiscounts,
		TotalDiscount:     quote.TotalDiscount,
		Total:             quote.Total,
		ShowItemDiscounts: quote.ShowItemDiscounts,
		SubmittedAt:       quote.SubmittedAt,
	}

	discountBase := quote.Subtotal.Sub(quote.ItemDiscounts)
	doc.TotalDiscountPercent = pricing.DiscountPercent(quote.TotalDiscount, discountBase)

	for _, item := range quote.Items {
		line := pricing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		lineTotal := line.LineTotal()
		discount := decimal.Zero
		percent := 0
		if quote.ShowItemDiscounts && item.ItemDiscount.IsPositive() {
			discount = item.ItemDiscount
			line.ItemDiscount = discount
			percent = pricing.DiscountPercent(discount, lineTotal)
		}
		net := line.NetTotal()
		doc.Lines = append(doc.Lines, DocumentLine{
			ProductName:     item.ProductName,
			Dimensions:      fmt.Sprintf("%d x %d cm", item.RoundedWidth, item.RoundedDepth),
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			LineTotal:       lineTotal,
			Discount:        discount,
			DiscountPercent: percent,
			NetTotal:        net,
		})
	}
	for _, extra := range quote.Extras {
		doc.Extras = append(doc.Extras, DocumentExtra{
			Description: extra.Description,
			Price:       extra.Price,
		})
	}
	return doc, nil
}

func buildHeader(branch *branches.BranchDTO, measurement *measurements.MeasurementDTO) DocumentHeader {
	header := DocumentHeader{
		BranchName:    branch.Name,
		BranchAddress: fmt.Sprintf("%s, %s %s", branch.Street, branch.PostalCode, branch.City),
		CustomerName:  measurement.Customer.Name,
		CustomerAddr:  fmt.Sprintf("%s, %s %s", measurement.Customer.Street, measurement.Customer.PostalCode, measurement.Customer.City),
	}
	if branch.Phone != nil {
		header.BranchPhone = *branch.Phone
	}
	if branch.Email != nil {
		header.BranchEmail = *branch.Email
	}
	return header
}
