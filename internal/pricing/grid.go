package pricing

import (
	"math"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/types"
	"github.com/shopspring/decimal"
)

// GridSpec is the rounding policy for one dimension axis.
type GridSpec struct {
	Min  int
	Max  int
	Step int
}

// The catalog tabulates prices on these fixed axes. The bounds must match
// the catalog data exactly and are not configurable per call.
var (
	WidthGrid = GridSpec{Min: 200, Max: 1200, Step: 100}
	DepthGrid = GridSpec{Min: 150, Max: 600, Step: 50}
)

// RoundToGrid snaps a raw measurement up to the next grid point and clamps
// it into the axis bounds. Rounding is always upward: a cover priced for the
// next-larger cell is never undersized relative to the measured opening.
// Zero and negative inputs clamp to the axis minimum.
func RoundToGrid(value float64, spec GridSpec) int {
	stepped := int(math.Ceil(value/float64(spec.Step))) * spec.Step
	if stepped < spec.Min {
		return spec.Min
	}
	if stepped > spec.Max {
		return spec.Max
	}
	return stepped
}

// LookupPrice fetches the price for an already-rounded width/depth pair.
// An absent cell is a defined outcome, not an error: the second return is
// false and the price is zero. Callers must check availability before
// treating the price as valid.
func LookupPrice(matrix types.DimensionMatrix, width, depth int) (decimal.Decimal, bool) {
	entries, ok := matrix[width]
	if !ok {
		return decimal.Zero, false
	}
	for _, entry := range entries {
		if entry.Depth == depth {
			return entry.Price, true
		}
	}
	return decimal.Zero, false
}

// GridPrice is the result of resolving raw dimensions against a matrix.
type GridPrice struct {
	RoundedWidth int
	RoundedDepth int
	UnitPrice    decimal.Decimal
	Available    bool
}

// PriceFor rounds both raw axes and looks up the resulting cell. This is the
// only entry point callers should use; it recomputes from the raw values on
// every call so a dimension change can never leave a stale rounded pair
// behind.
func PriceFor(matrix types.DimensionMatrix, rawWidth, rawDepth float64) GridPrice {
	width := RoundToGrid(rawWidth, WidthGrid)
	depth := RoundToGrid(rawDepth, DepthGrid)
	price, available := LookupPrice(matrix, width, depth)
	return GridPrice{
		RoundedWidth: width,
		RoundedDepth: depth,
		UnitPrice:    price,
		Available:    available,
	}
}
