package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
)

func testMatrix() types.DimensionMatrix {
	return types.DimensionMatrix{
		500: {
			{Depth: 250, Price: decimal.RequireFromString("420.00")},
			{Depth: 300, Price: decimal.RequireFromString("450.00")},
		},
		600: {
			{Depth: 300, Price: decimal.RequireFromString("510.00")},
		},
		1200: {
			{Depth: 600, Price: decimal.RequireFromString("990.00")},
		},
	}
}

func TestRoundToGrid(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		spec  GridSpec
		want  int
	}{
		{"below min clamps up", 120, WidthGrid, 200},
		{"above max clamps down", 1300, WidthGrid, 1200},
		{"rounds up to next step", 485, WidthGrid, 500},
		{"exact boundary stays", 500, WidthGrid, 500},
		{"just past boundary rounds up", 501, WidthGrid, 600},
		{"depth rounds up", 287, DepthGrid, 300},
		{"depth below min clamps", 100, DepthGrid, 150},
		{"depth above max clamps", 700, DepthGrid, 600},
		{"fractional input rounds up", 200.1, WidthGrid, 300},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RoundToGrid(tc.value, tc.spec))
		})
	}
}

func TestRoundToGridIdempotent(t *testing.T) {
	for v := 150; v <= 1300; v += 37 {
		once := RoundToGrid(float64(v), WidthGrid)
		assert.Equal(t, once, RoundToGrid(float64(once), WidthGrid))
	}
	for v := 100; v <= 700; v += 23 {
		once := RoundToGrid(float64(v), DepthGrid)
		assert.Equal(t, once, RoundToGrid(float64(once), DepthGrid))
	}
}

func TestLookupPrice(t *testing.T) {
	matrix := testMatrix()

	price, ok := LookupPrice(matrix, 500, 300)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("450.00")))

	_, ok = LookupPrice(matrix, 700, 300)
	assert.False(t, ok, "missing width is unavailable, not an error")

	_, ok = LookupPrice(matrix, 600, 350)
	assert.False(t, ok, "missing depth under a known width is unavailable")

	_, ok = LookupPrice(nil, 500, 300)
	assert.False(t, ok)
}

func TestPriceFor(t *testing.T) {
	matrix := testMatrix()

	t.Run("rounds then resolves", func(t *testing.T) {
		got := PriceFor(matrix, 485, 287)
		assert.Equal(t, 500, got.RoundedWidth)
		assert.Equal(t, 300, got.RoundedDepth)
		require.True(t, got.Available)
		assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("450.00")))
	})

	t.Run("clamps oversize input", func(t *testing.T) {
		got := PriceFor(matrix, 1300, 700)
		assert.Equal(t, 1200, got.RoundedWidth)
		assert.Equal(t, 600, got.RoundedDepth)
		require.True(t, got.Available)
		assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("990.00")))
	})

	t.Run("missing cell yields unavailable zero", func(t *testing.T) {
		got := PriceFor(matrix, 750, 400)
		assert.Equal(t, 800, got.RoundedWidth)
		assert.Equal(t, 400, got.RoundedDepth)
		assert.False(t, got.Available)
		assert.True(t, got.UnitPrice.IsZero())
	})
}
