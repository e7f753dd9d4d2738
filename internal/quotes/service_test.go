package quotes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/internal/catalog"
	"github.com/fuatkeles/aufmass-app-sub001/internal/measurements"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/db"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/metrics"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
)

func setupQuotesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	quotesTable := `
CREATE TABLE IF NOT EXISTS quotes (
  id TEXT PRIMARY KEY,
  measurement_id TEXT NOT NULL UNIQUE,
  branch_id TEXT NOT NULL,
  subtotal NUMERIC NOT NULL,
  item_discounts NUMERIC NOT NULL,
  total_discount NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  show_item_discounts INTEGER NOT NULL DEFAULT 0,
  submitted_by_id TEXT,
  submitted_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	itemsTable := `
CREATE TABLE IF NOT EXISTS quote_items (
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL,
  product_slug TEXT NOT NULL,
  product_name TEXT NOT NULL,
  raw_width NUMERIC NOT NULL,
  raw_depth NUMERIC NOT NULL,
  rounded_width INTEGER NOT NULL,
  rounded_depth INTEGER NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL,
  item_discount NUMERIC NOT NULL DEFAULT 0,
  price_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	extrasTable := `
CREATE TABLE IF NOT EXISTS quote_extras (
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(quotesTable).Error)
	require.NoError(t, conn.Exec(itemsTable).Error)
	require.NoError(t, conn.Exec(extrasTable).Error)
	return conn
}

type fakeCatalog struct {
	products map[string]*catalog.ProductDetail
}

func (f *fakeCatalog) GetProduct(_ context.Context, slug string) (*catalog.ProductDetail, error) {
	if detail, ok := f.products[slug]; ok {
		return detail, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type fakeMeasurements struct {
	records map[uuid.UUID]*measurements.MeasurementDTO
}

func (f *fakeMeasurements) Get(_ context.Context, branchID, id uuid.UUID) (*measurements.MeasurementDTO, error) {
	if dto, ok := f.records[id]; ok && dto.BranchID == branchID {
		return dto, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "measurement not found")
}

func pergolaMatrix() types.DimensionMatrix {
	return types.DimensionMatrix{
		500: {{Depth: 300, Price: decimal.RequireFromString("450.00")}},
		600: {{Depth: 300, Price: decimal.RequireFromString("500.00")}},
	}
}

type quotesFixture struct {
	svc           Service
	branchID      uuid.UUID
	measurementID uuid.UUID
	meas          *fakeMeasurements
	registry      *prometheus.Registry
	pricingM      *metrics.PricingMetrics
}

func newQuotesFixture(t *testing.T) *quotesFixture {
	t.Helper()

	conn := setupQuotesTestDB(t)
	branchID := uuid.New()
	measurementID := uuid.New()

	cat := &fakeCatalog{products: map[string]*catalog.ProductDetail{
		"pergola-classic": {
			ID:              uuid.New(),
			Slug:            "pergola-classic",
			Name:            "Pergola Classic",
			IsActive:        true,
			DimensionMatrix: pergolaMatrix(),
		},
	}}
	meas := &fakeMeasurements{records: map[uuid.UUID]*measurements.MeasurementDTO{
		measurementID: {ID: measurementID, BranchID: branchID, Status: enums.MeasurementStatusCompleted},
	}}

	registry := prometheus.NewRegistry()
	pricingM := metrics.NewPricingMetrics(registry)

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), cat, meas, pricingM)
	require.NoError(t, err)

	return &quotesFixture{
		svc:           svc,
		branchID:      branchID,
		measurementID: measurementID,
		meas:          meas,
		registry:      registry,
		pricingM:      pricingM,
	}
}

func TestPriceDraftResolvesAndTotals(t *testing.T) {
	fx := newQuotesFixture(t)

	priced, err := fx.svc.PriceDraft(context.Background(), fx.branchID, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 485, Depth: 287, Quantity: 2, ItemDiscount: decimal.RequireFromString("50.00")},
		},
		Extras:            []DraftExtraInput{{Description: "Montage", Price: decimal.RequireFromString("200.00")}},
		TotalDiscount:     decimal.RequireFromString("30.00"),
		ShowItemDiscounts: true,
	})
	require.NoError(t, err)
	require.Len(t, priced.Items, 1)

	line := priced.Items[0]
	assert.Equal(t, 500, line.RoundedWidth)
	assert.Equal(t, 300, line.RoundedDepth)
	assert.True(t, line.Available)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("450.00")))
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("900.00")))

	assert.True(t, priced.Subtotal.Equal(decimal.RequireFromString("1100.00")))
	assert.True(t, priced.ItemDiscounts.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, priced.Total.Equal(decimal.RequireFromString("1020.00")))
	assert.Empty(t, priced.Warnings)
}

func TestPriceDraftUnavailableCell(t *testing.T) {
	fx := newQuotesFixture(t)

	priced, err := fx.svc.PriceDraft(context.Background(), fx.branchID, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 485, Depth: 450, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, priced.Items, 1)
	assert.False(t, priced.Items[0].Available)
	assert.True(t, priced.Items[0].UnitPrice.IsZero())
	assert.True(t, priced.Subtotal.IsZero(), "unavailable lines contribute nothing")
	require.Len(t, priced.Warnings, 1)
	assert.Contains(t, priced.Warnings[0], "no price for 500x450")
	assert.Equal(t, float64(1), counterValue(t, fx.registry, "pricing_lookup_unavailable_total"))
}

func TestPriceDraftUnknownProductWarns(t *testing.T) {
	fx := newQuotesFixture(t)

	priced, err := fx.svc.PriceDraft(context.Background(), fx.branchID, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "does-not-exist", Width: 400, Depth: 300, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, priced.Warnings, 1)
	assert.Contains(t, priced.Warnings[0], "unknown product")
	assert.True(t, priced.Subtotal.IsZero())
}

func TestPriceDraftToggleOffClearsDiscounts(t *testing.T) {
	fx := newQuotesFixture(t)

	priced, err := fx.svc.PriceDraft(context.Background(), fx.branchID, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 500, Depth: 300, Quantity: 1, ItemDiscount: decimal.RequireFromString("40.00")},
		},
		ShowItemDiscounts: false,
	})
	require.NoError(t, err)
	assert.True(t, priced.ItemDiscounts.IsZero())
	assert.True(t, priced.Items[0].ItemDiscount.IsZero(), "toggle off discards entered discounts")
	assert.True(t, priced.Total.Equal(decimal.RequireFromString("450.00")))
}

func TestPriceDraftNegativeTotalDiscount(t *testing.T) {
	fx := newQuotesFixture(t)

	priced, err := fx.svc.PriceDraft(context.Background(), fx.branchID, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 500, Depth: 300, Quantity: 1},
		},
		TotalDiscount: decimal.RequireFromString("-20.00"),
	})
	require.NoError(t, err)
	assert.True(t, priced.TotalDiscount.IsZero())
	assert.True(t, priced.Total.Equal(decimal.RequireFromString("450.00")))
	assert.Contains(t, priced.Warnings, "negative total discount ignored")
}

func TestPriceDraftNegativeItemDiscount(t *testing.T) {
	fx := newQuotesFixture(t)

	priced, err := fx.svc.PriceDraft(context.Background(), fx.branchID, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 500, Depth: 300, Quantity: 1, ItemDiscount: decimal.RequireFromString("-10.00")},
		},
		ShowItemDiscounts: true,
	})
	require.NoError(t, err)
	require.Len(t, priced.Items, 1)
	assert.True(t, priced.Items[0].ItemDiscount.IsZero(), "negative discount input clamps to zero")
	assert.True(t, priced.ItemDiscounts.IsZero())
	assert.True(t, priced.Total.Equal(decimal.RequireFromString("450.00")))
	assert.Contains(t, priced.Warnings, "item 1: negative discount ignored")
}

func TestSubmitPersistsSnapshot(t *testing.T) {
	fx := newQuotesFixture(t)
	actor := uuid.New()

	dto, err := fx.svc.Submit(context.Background(), fx.branchID, fx.measurementID, actor, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 485, Depth: 287, Quantity: 2, ItemDiscount: decimal.RequireFromString("50.00")},
			{ProductSlug: "does-not-exist", Width: 300, Depth: 200, Quantity: 1},
		},
		Extras: []DraftExtraInput{
			{Description: "Montage", Price: decimal.RequireFromString("200.00")},
			{Description: "  ", Price: decimal.RequireFromString("99.00")},
		},
		TotalDiscount:     decimal.RequireFromString("30.00"),
		ShowItemDiscounts: true,
	})
	require.NoError(t, err)

	require.Len(t, dto.Items, 1, "only valid lines are snapshotted")
	assert.Equal(t, "pergola-classic", dto.Items[0].ProductSlug)
	assert.Equal(t, 500, dto.Items[0].RoundedWidth)
	require.Len(t, dto.Extras, 1, "blank extras are dropped")
	assert.True(t, dto.Subtotal.Equal(decimal.RequireFromString("1100.00")))
	assert.True(t, dto.Total.Equal(decimal.RequireFromString("1020.00")))

	assert.Equal(t, float64(1), counterValue(t, fx.registry, "quotes_submitted_total"))
}

func TestSubmitRequiresPricedItem(t *testing.T) {
	fx := newQuotesFixture(t)

	_, err := fx.svc.Submit(context.Background(), fx.branchID, fx.measurementID, uuid.Nil, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 485, Depth: 450, Quantity: 1},
		},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSubmitRejectsTrashedMeasurement(t *testing.T) {
	fx := newQuotesFixture(t)
	fx.meas.records[fx.measurementID].Status = enums.MeasurementStatusTrash

	_, err := fx.svc.Submit(context.Background(), fx.branchID, fx.measurementID, uuid.Nil, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 500, Depth: 300, Quantity: 1},
		},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestSubmitReplacesPreviousSnapshot(t *testing.T) {
	fx := newQuotesFixture(t)

	first, err := fx.svc.Submit(context.Background(), fx.branchID, fx.measurementID, uuid.Nil, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 500, Depth: 300, Quantity: 1},
		},
	})
	require.NoError(t, err)

	second, err := fx.svc.Submit(context.Background(), fx.branchID, fx.measurementID, uuid.Nil, DraftInput{
		Items: []DraftItemInput{
			{ProductSlug: "pergola-classic", Width: 600, Depth: 300, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.Subtotal.Equal(decimal.RequireFromString("500.00")))

	loaded, err := fx.svc.GetForMeasurement(context.Background(), fx.branchID, fx.measurementID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 600, loaded.Items[0].RoundedWidth)
}

func TestGetForMeasurementNotFound(t *testing.T) {
	fx := newQuotesFixture(t)

	_, err := fx.svc.GetForMeasurement(context.Background(), fx.branchID, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

// counterValue sums a counter family gathered from the registry.
func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		total := 0.0
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}
