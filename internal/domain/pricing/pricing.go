// Package pricing contains the cart arithmetic that does not depend on any
// particular cart: tax, percentage discounts, currency formatting and line
// summaries.
package pricing

import (
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat tax applied to a cart subtotal.
const DefaultTaxRate = 0.18

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₹"

// Tax returns subtotal * rate.
func Tax(subtotal, rate float64) float64 {
	return subtotal * rate
}

// DiscountAmount converts a percentage of subtotal into an absolute amount.
func DiscountAmount(subtotal, percent float64) float64 {
	return (subtotal * percent) / 100
}

// FormatCurrency renders amount with the currency symbol and two decimals.
func FormatCurrency(amount float64) string {
	return CurrencySymbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// Line is the price and quantity of one cart line.
type Line struct {
	Price    float64
	Quantity int
}

// Summary aggregates a list of lines.
type Summary struct {
	Total          float64
	ItemCount      int
	UniqueItems    int
	FormattedTotal string
}

// Subtotal sums price * quantity over lines.
func Subtotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}

	return total
}

// Summarize totals lines without needing a cart.
func Summarize(lines []Line) Summary {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	total := Subtotal(lines)

	return Summary{
		Total:          total,
		ItemCount:      count,
		UniqueItems:    len(lines),
		FormattedTotal: FormatCurrency(total),
	}
}
