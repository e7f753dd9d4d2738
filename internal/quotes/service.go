package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/internal/catalog"
	"github.com/fuatkeles/aufmass-app-sub001/internal/measurements"
	"github.com/fuatkeles/aufmass-app-sub001/internal/pricing"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/db"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/metrics"
)

// Service prices quote drafts and persists submitted snapshots.
type Service interface {
	PriceDraft(ctx context.Context, branchID uuid.UUID, input DraftInput) (*PricedQuote, error)
	Submit(ctx context.Context, branchID, measurementID, actorID uuid.UUID, input DraftInput) (*QuoteDTO, error)
	GetForMeasurement(ctx context.Context, branchID, measurementID uuid.UUID) (*QuoteDTO, error)
}

type productResolver interface {
	GetProduct(ctx context.Context, slug string) (*catalog.ProductDetail, error)
}

type measurementLoader interface {
	Get(ctx context.Context, branchID, id uuid.UUID) (*measurements.MeasurementDTO, error)
}

// service implements the quote service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	catalog  productResolver
	meas     measurementLoader
	metrics  *metrics.PricingMetrics
}

// NewService constructs a quote service instance.
func NewService(repo *Repository, dbClient *db.Client, catalog productResolver, meas measurementLoader, pricingMetrics *metrics.PricingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog resolver required")
	}
	if meas == nil {
		return nil, fmt.Errorf("measurement loader required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		catalog:  catalog,
		meas:     meas,
		metrics:  pricingMetrics,
	}, nil
}

// PriceDraft reprices the whole draft from its raw values. It never fails on
// individual bad lines; those come back unavailable with a warning so the
// form can show them.
func (s *service) PriceDraft(ctx context.Context, branchID uuid.UUID, input DraftInput) (*PricedQuote, error) {
	if branchID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch id is required")
	}

	items, warnings, err := s.resolveLines(ctx, input)
	if err != nil {
		return nil, err
	}

	totalDiscount := input.TotalDiscount
	if totalDiscount.IsNegative() {
		totalDiscount = decimal.Zero
		warnings = append(warnings, "negative total discount ignored")
	}

	totals := pricing.ComputeTotals(items, toExtras(input.Extras), totalDiscount)

	priced := &PricedQuote{
		Extras:            validExtras(input.Extras),
		Subtotal:          totals.Subtotal,
		ItemDiscounts:     totals.ItemDiscounts,
		TotalDiscount:     totals.TotalDiscount,
		Total:             totals.FinalTotal,
		ShowItemDiscounts: input.ShowItemDiscounts,
		Warnings:          warnings,
	}
	for _, item := range items {
		priced.Items = append(priced.Items, PricedItem{
			ProductSlug:  item.ProductSlug,
			ProductName:  item.ProductName,
			RawWidth:     item.RawWidth,
			RawDepth:     item.RawDepth,
			RoundedWidth: item.RoundedWidth,
			RoundedDepth: item.RoundedDepth,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			ItemDiscount: item.ItemDiscount,
			LineTotal:    item.LineTotal(),
			Available:    item.Available,
		})
	}
	return priced, nil
}

// Submit reprices the draft and persists one atomic snapshot of the valid
// lines, valid extras and computed totals. Resubmitting replaces the
// previous snapshot.
func (s *service) Submit(ctx context.Context, branchID, measurementID, actorID uuid.UUID, input DraftInput) (*QuoteDTO, error) {
	measurement, err := s.meas.Get(ctx, branchID, measurementID)
	if err != nil {
		return nil, err
	}
	if measurement.Status == enums.MeasurementStatusTrash {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "trashed measurement cannot receive a quote")
	}

	items, _, err := s.resolveLines(ctx, input)
	if err != nil {
		return nil, err
	}

	validItems := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		if item.Valid() {
			validItems = append(validItems, item)
		}
	}
	if len(validItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote needs at least one priced item")
	}

	totalDiscount := input.TotalDiscount
	if totalDiscount.IsNegative() {
		totalDiscount = decimal.Zero
	}
	extras := validExtras(input.Extras)
	totals := pricing.ComputeTotals(validItems, toExtras(extras), totalDiscount)

	quote := &models.Quote{
		ID:                uuid.New(),
		MeasurementID:     measurementID,
		BranchID:          branchID,
		Subtotal:          totals.Subtotal,
		ItemDiscounts:     totals.ItemDiscounts,
		TotalDiscount:     totals.TotalDiscount,
		Total:             totals.FinalTotal,
		ShowItemDiscounts: input.ShowItemDiscounts,
		SubmittedAt:       time.Now().UTC(),
	}
	if actorID != uuid.Nil {
		quote.SubmittedByID = &actorID
	}
	for _, item := range validItems {
		discount := item.ItemDiscount
		if !discount.IsPositive() {
			discount = decimal.Zero
		}
		quote.Items = append(quote.Items, models.QuoteItem{
			ID:             uuid.New(),
			QuoteID:        quote.ID,
			ProductSlug:    item.ProductSlug,
			ProductName:    item.ProductName,
			RawWidth:       item.RawWidth,
			RawDepth:       item.RawDepth,
			RoundedWidth:   item.RoundedWidth,
			RoundedDepth:   item.RoundedDepth,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			ItemDiscount:   discount,
			PriceAvailable: true,
		})
	}
	for _, extra := range extras {
		quote.Extras = append(quote.Extras, models.QuoteExtra{
			ID:          uuid.New(),
			QuoteID:     quote.ID,
			Description: strings.TrimSpace(extra.Description),
			Price:       extra.Price,
		})
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteByMeasurement(ctx, measurementID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: drop previous quote")
		}
		if _, err := txRepo.Create(ctx, quote); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert quote snapshot")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncQuoteSubmitted()
	return s.GetForMeasurement(ctx, branchID, measurementID)
}

// GetForMeasurement loads the submitted snapshot.
func (s *service) GetForMeasurement(ctx context.Context, branchID, measurementID uuid.UUID) (*QuoteDTO, error) {
	quote, err := s.repo.FindByMeasurement(ctx, branchID, measurementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load quote")
	}
	return toQuoteDTO(quote), nil
}

// resolveLines prices every draft line from its raw dimensions. The item
// discount toggle is applied here so all downstream math sees the cleared
// values when it is off.
func (s *service) resolveLines(ctx context.Context, input DraftInput) ([]pricing.LineItem, []string, error) {
	var warnings []string
	items := make([]pricing.LineItem, 0, len(input.Items))

	for i, line := range input.Items {
		slug := strings.TrimSpace(line.ProductSlug)
		discount := line.ItemDiscount
		if discount.IsNegative() {
			discount = decimal.Zero
			warnings = append(warnings, fmt.Sprintf("item %d: negative discount ignored", i+1))
		}
		item := pricing.LineItem{
			ProductSlug:  slug,
			RawWidth:     line.Width,
			RawDepth:     line.Depth,
			Quantity:     line.Quantity,
			ItemDiscount: discount,
		}

		if slug == "" {
			warnings = append(warnings, fmt.Sprintf("item %d: missing product", i+1))
			items = append(items, item)
			continue
		}

		detail, err := s.catalog.GetProduct(ctx, slug)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				warnings = append(warnings, fmt.Sprintf("item %d: unknown product %q", i+1, slug))
				items = append(items, item)
				continue
			}
			return nil, nil, err
		}

		grid := pricing.PriceFor(detail.DimensionMatrix, line.Width, line.Depth)
		item.ProductName = detail.Name
		item.RoundedWidth = grid.RoundedWidth
		item.RoundedDepth = grid.RoundedDepth
		item.UnitPrice = grid.UnitPrice
		item.Available = grid.Available

		if grid.Available {
			s.metrics.IncLinePriced(slug)
		} else {
			s.metrics.IncUnavailable(slug)
			warnings = append(warnings, fmt.Sprintf("item %d: no price for %dx%d", i+1, grid.RoundedWidth, grid.RoundedDepth))
		}
		items = append(items, item)
	}

	if !input.ShowItemDiscounts {
		items = pricing.ClearItemDiscounts(items)
	}
	return items, warnings, nil
}

func toExtras(extras []DraftExtraInput) []pricing.ExtraItem {
	out := make([]pricing.ExtraItem, 0, len(extras))
	for _, extra := range extras {
		out = append(out, pricing.ExtraItem{Description: extra.Description, Price: extra.Price})
	}
	return out
}

func validExtras(extras []DraftExtraInput) []DraftExtraInput {
	out := make([]DraftExtraInput, 0, len(extras))
	for _, extra := range extras {
		if (pricing.ExtraItem{Description: extra.Description, Price: extra.Price}).Valid() {
			out = append(out, extra)
		}
	}
	return out
}
