package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one product line of an in-progress quote.
type LineItem struct {
	ProductSlug  string
	ProductName  string
	RawWidth     float64
	RawDepth     float64
	RoundedWidth int
	RoundedDepth int
	Quantity     int
	UnitPrice    decimal.Decimal
	ItemDiscount decimal.Decimal
	Available    bool
}

// Valid reports whether the line contributes to totals and submission.
// Lines without a resolved price are excluded entirely rather than priced
// at zero.
func (li LineItem) Valid() bool {
	if strings.TrimSpace(li.ProductSlug) == "" {
		return false
	}
	if li.Quantity < 1 {
		return false
	}
	return li.Available && li.UnitPrice.IsPositive()
}

// LineTotal is unit price times quantity, before discounts.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// NetTotal is the line total minus the item discount, floored at zero for
// display purposes.
func (li LineItem) NetTotal() decimal.Decimal {
	net := li.LineTotal().Sub(li.ItemDiscount)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// ExtraItem is a flat-fee addendum with no quantity and no discount.
type ExtraItem struct {
	Description string
	Price       decimal.Decimal
}

// Valid reports whether the extra contributes to totals and submission.
func (e ExtraItem) Valid() bool {
	return strings.TrimSpace(e.Description) != "" && e.Price.IsPositive()
}

// Totals is the derived aggregate of a quote; it is recomputed in full on
// every mutation and never stored incrementally.
type Totals struct {
	Subtotal      decimal.Decimal
	ItemDiscounts decimal.Decimal
	TotalDiscount decimal.Decimal
	FinalTotal    decimal.Decimal
}

// Subtotal sums valid item line totals and valid extras. The same validity
// filter is applied here and at submission so the displayed total always
// matches the persisted payload.
func Subtotal(items []LineItem, extras []ExtraItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Valid() {
			sum = sum.Add(item.LineTotal())
		}
	}
	for _, extra := range extras {
		if extra.Valid() {
			sum = sum.Add(extra.Price)
		}
	}
	return sum
}

// ItemDiscountsSum sums positive per-item discounts over valid items.
func ItemDiscountsSum(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Valid() && item.ItemDiscount.IsPositive() {
			sum = sum.Add(item.ItemDiscount)
		}
	}
	return sum
}

// FinalTotal applies both discount mechanisms with a floor of zero; the
// visible total can never go negative no matter how the discounts combine.
func FinalTotal(items []LineItem, extras []ExtraItem, totalDiscount decimal.Decimal) decimal.Decimal {
	if totalDiscount.IsNegative() {
		totalDiscount = decimal.Zero
	}
	total := Subtotal(items, extras).Sub(ItemDiscountsSum(items)).Sub(totalDiscount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// ComputeTotals derives the full aggregate in one pass.
func ComputeTotals(items []LineItem, extras []ExtraItem, totalDiscount decimal.Decimal) Totals {
	if totalDiscount.IsNegative() {
		totalDiscount = decimal.Zero
	}
	return Totals{
		Subtotal:      Subtotal(items, extras),
		ItemDiscounts: ItemDiscountsSum(items),
		TotalDiscount: totalDiscount,
		FinalTotal:    FinalTotal(items, extras, totalDiscount),
	}
}

// ClearItemDiscounts zeroes every item discount. Turning the item-discount
// toggle off discards the entered discounts; it does not merely hide them.
func ClearItemDiscounts(items []LineItem) []LineItem {
	cleared := make([]LineItem, len(items))
	for i, item := range items {
		item.ItemDiscount = decimal.Zero
		cleared[i] = item
	}
	return cleared
}

// DiscountPercent derives the display percentage for a discount amount
// against its base. The percentage is always derived from the amounts,
// never stored, so the two representations cannot drift apart.
func DiscountPercent(amount, base decimal.Decimal) int {
	if !amount.IsPositive() || !base.IsPositive() {
		return 0
	}
	return int(amount.Div(base).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
