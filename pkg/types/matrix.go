package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// DepthPrice is one priced cell under a given matrix width.
type DepthPrice struct {
	Depth int             `json:"depth"`
	Price decimal.Decimal `json:"price"`
}

// DimensionMatrix maps a rounded width to the priced depth entries tabulated
// for it. The matrix is sparse; missing cells mean "no price available".
//
// Keys are kept numeric in memory. JSON objects carry string keys, so Scan
// normalizes them back to integers once at the storage boundary instead of
// letting string-keyed lookups leak into the pricing code.
type DimensionMatrix map[int][]DepthPrice

// Value marshals the matrix into a jsonb literal.
func (m DimensionMatrix) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("dimension matrix: %w", err)
	}
	return raw, nil
}

// Scan decodes a jsonb literal into the matrix.
func (m *DimensionMatrix) Scan(value interface{}) error {
	if value == nil {
		*m = DimensionMatrix{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("dimension matrix: unsupported scan type %T", value)
	}

	decoded := DimensionMatrix{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("dimension matrix: %w", err)
	}
	*m = decoded
	return nil
}

// Widths lists the tabulated width keys in ascending order.
func (m DimensionMatrix) Widths() []int {
	widths := make([]int, 0, len(m))
	for w := range m {
		widths = append(widths, w)
	}
	sort.Ints(widths)
	return widths
}
