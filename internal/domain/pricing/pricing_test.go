package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTax(t *testing.T) {
	assert.InDelta(t, 18.0, Tax(100, DefaultTaxRate), 1e-9)
	assert.InDelta(t, 0.0, Tax(0, DefaultTaxRate), 1e-9)
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		percent  float64
		want     float64
	}{
		{name: "ten percent", subtotal: 100, percent: 10, want: 10},
		{name: "zero percent", subtotal: 100, percent: 0, want: 0},
		{name: "full discount", subtotal: 250, percent: 100, want: 250},
		{name: "empty subtotal", subtotal: 0, percent: 50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DiscountAmount(tt.subtotal, tt.percent), 1e-9)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 0, want: "₹0.00"},
		{amount: 118, want: "₹118.00"},
		{amount: 1234.5, want: "₹1234.50"},
		{amount: 0.125, want: "₹0.13"},
		{amount: -10, want: "₹-10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]Line{
		{Price: 50, Quantity: 2},
		{Price: 25.5, Quantity: 1},
	})

	assert.InDelta(t, 125.5, summary.Total, 1e-9)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, 2, summary.UniqueItems)
	assert.Equal(t, "₹125.50", summary.FormattedTotal)

	empty := Summarize(nil)
	assert.Equal(t, "₹0.00", empty.FormattedTotal)
}
