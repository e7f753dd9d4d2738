package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
	pkgredis "github.com/fuatkeles/aufmass-app-sub001/pkg/redis"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  dimension_matrix TEXT NOT NULL,
  spec_fields TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

type fakeCache struct {
	values map[string]string
	gets   int
	sets   int
	dels   []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) CatalogKey(parts ...string) string {
	key := "aufmass:catalog"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.gets++
	val, ok := f.values[key]
	if !ok {
		return "", pkgredis.ErrCacheMiss
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	f.values[key] = value.(string)
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
		f.dels = append(f.dels, k)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "catalog-test", Level: zerolog.Disabled})
}

func seedProduct(t *testing.T, db *gorm.DB, slug, name string, active bool) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		Slug:     slug,
		Name:     name,
		IsActive: active,
		DimensionMatrix: types.DimensionMatrix{
			500: {{Depth: 300, Price: decimal.RequireFromString("450.00")}},
		},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListProductsFiltersInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "pergola-classic", "Pergola Classic", true)
	seedProduct(t, db, "awning-retired", "Awning Retired", false)

	svc, err := NewService(NewRepository(db), nil, time.Minute, testLogger())
	require.NoError(t, err)

	got, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pergola-classic", got[0].Slug)
}

func TestListProductsUsesCache(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "pergola-classic", "Pergola Classic", true)

	cache := newFakeCache()
	svc, err := NewService(NewRepository(db), cache, time.Minute, testLogger())
	require.NoError(t, err)

	first, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.sets)

	// Second read must come from the cache even after the row disappears.
	require.NoError(t, db.Exec("DELETE FROM products").Error)
	second, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Slug, second[0].Slug)
}

func TestGetProductNotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db), nil, time.Minute, testLogger())
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), "nope")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetProductDetail(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "pergola-classic", "Pergola Classic", true)

	cache := newFakeCache()
	svc, err := NewService(NewRepository(db), cache, time.Minute, testLogger())
	require.NoError(t, err)

	detail, err := svc.GetProduct(context.Background(), "pergola-classic")
	require.NoError(t, err)
	assert.Equal(t, "Pergola Classic", detail.Name)
	require.Contains(t, detail.DimensionMatrix, 500)
	assert.Equal(t, 300, detail.DimensionMatrix[500][0].Depth)

	cached, err := svc.GetProduct(context.Background(), "pergola-classic")
	require.NoError(t, err)
	assert.Equal(t, detail.ID, cached.ID)
	require.Contains(t, cached.DimensionMatrix, 500, "matrix keys must survive the cache roundtrip")
}

func TestUpsertProductInvalidatesCache(t *testing.T) {
	db := setupCatalogTestDB(t)
	existing := seedProduct(t, db, "pergola-classic", "Pergola Classic", true)

	cache := newFakeCache()
	svc, err := NewService(NewRepository(db), cache, time.Minute, testLogger())
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background())
	require.NoError(t, err)
	_, err = svc.GetProduct(context.Background(), "pergola-classic")
	require.NoError(t, err)
	require.Len(t, cache.values, 2)

	updated, err := svc.UpsertProduct(context.Background(), UpsertProductInput{
		Slug:     "pergola-classic",
		Name:     "Pergola Classic II",
		IsActive: true,
		DimensionMatrix: types.DimensionMatrix{
			600: {{Depth: 350, Price: decimal.RequireFromString("520.00")}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Pergola Classic II", updated.Name)
	assert.Empty(t, cache.values, "upsert must drop list and detail keys")
}

func TestUpsertProductCreatesWhenMissing(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db), nil, time.Minute, testLogger())
	require.NoError(t, err)

	created, err := svc.UpsertProduct(context.Background(), UpsertProductInput{
		Slug:     "glass-roof",
		Name:     "Glass Roof",
		IsActive: true,
		DimensionMatrix: types.DimensionMatrix{
			400: {{Depth: 250, Price: decimal.RequireFromString("780.00")}},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	loaded, err := svc.GetProduct(context.Background(), "glass-roof")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
}

func TestUpsertProductInactiveRoundTrips(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db), nil, time.Minute, testLogger())
	require.NoError(t, err)

	created, err := svc.UpsertProduct(context.Background(), UpsertProductInput{
		Slug:     "awning-retired",
		Name:     "Awning Retired",
		IsActive: false,
		DimensionMatrix: types.DimensionMatrix{
			500: {{Depth: 300, Price: decimal.RequireFromString("450.00")}},
		},
	})
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	var row models.Product
	require.NoError(t, db.First(&row, "slug = ?", "awning-retired").Error)
	assert.False(t, row.IsActive, "inactive flag must survive the insert")

	listed, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Retiring an existing active product must stick as well.
	seedProduct(t, db, "pergola-classic", "Pergola Classic", true)
	retired, err := svc.UpsertProduct(context.Background(), UpsertProductInput{
		Slug:     "pergola-classic",
		Name:     "Pergola Classic",
		IsActive: false,
		DimensionMatrix: types.DimensionMatrix{
			500: {{Depth: 300, Price: decimal.RequireFromString("450.00")}},
		},
	})
	require.NoError(t, err)
	assert.False(t, retired.IsActive)

	listed, err = svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUpsertProductValidation(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db), nil, time.Minute, testLogger())
	require.NoError(t, err)

	cases := []UpsertProductInput{
		{Slug: "", Name: "X", DimensionMatrix: types.DimensionMatrix{1: nil}},
		{Slug: "x", Name: "", DimensionMatrix: types.DimensionMatrix{1: nil}},
		{Slug: "x", Name: "X"},
	}
	for _, input := range cases {
		_, err := svc.UpsertProduct(context.Background(), input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}
