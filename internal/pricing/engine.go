package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// DiscountKind tells whether a discount is an amount of money or a share of the subtotal.
// The values are the literals persisted in the estimate blob.
type DiscountKind string

const (
	DiscountAbsolute DiscountKind = "R$"
	DiscountPercent  DiscountKind = "%"
)

// Item describes the numeric part of a line item. Zero values stand for missing fields.
type Item struct {
	Quantity  float64
	UnitPrice float64
	Discount  float64
}

// ItemTotal returns quantity * unit price minus the item discount, never below zero.
func ItemTotal(it Item) float64 {
	gross := dec(it.Quantity).Mul(dec(it.UnitPrice))
	return clamp(gross.Sub(dec(it.Discount)))
}

// Subtotal sums the already computed item totals. An empty slice yields 0.
func Subtotal(totals []float64) float64 {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(dec(t))
	}
	return sum.InexactFloat64()
}

// GrandTotal applies the document discount to the subtotal.
//
// Percent discounts are not range checked: anything above 100 just clamps the total to zero.
// Unknown kinds are handled as absolute amounts.
func GrandTotal(subtotal, discount float64, kind DiscountKind) float64 {
	s := dec(subtotal)
	d := dec(discount)
	if kind == DiscountPercent {
		return clamp(s.Sub(s.Mul(d).Div(decimal.NewFromInt(100))))
	}
	return clamp(s.Sub(d))
}

// dec converts a float into a decimal, treating NaN and infinities as invalid input (0).
func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func clamp(v decimal.Decimal) float64 {
	if v.IsNegative() {
		return 0
	}
	return v.InexactFloat64()
}
