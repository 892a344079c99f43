package entity

import (
	"math"
	"testing"
	"time"

	domainerrors "campuscart/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartItem(id, name string, price float64) *Item {
	return &Item{ID: id, Name: name, Price: price, Quantity: 5, Category: CategoryEducation}
}

func TestCart_EndToEndTotals(t *testing.T) {
	cart := NewCart(0.18)
	require.NoError(t, cart.AddItem(cartItem("item_1", "Book", 50), 2))

	assert.InDelta(t, 100.0, cart.Subtotal(), 1e-9)
	assert.InDelta(t, 18.0, cart.Tax(), 1e-9)
	assert.InDelta(t, 0.0, cart.Discount(), 1e-9)
	assert.InDelta(t, 118.0, cart.FinalTotal(), 1e-9)

	summary := cart.Summary()
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 1, summary.UniqueItems)
	assert.Equal(t, "₹100.00", summary.FormattedSubtotal)
	assert.Equal(t, "₹18.00", summary.FormattedTax)
	assert.Equal(t, "₹118.00", summary.FormattedFinalTotal)
}

func TestCart_AddSameItemMergesLines(t *testing.T) {
	cart := NewCart(0.18)
	book := cartItem("item_1", "Book", 50)

	require.NoError(t, cart.AddItem(book, 1))
	require.NoError(t, cart.AddItem(book, 3))

	assert.Len(t, cart.Lines(), 1)
	assert.Equal(t, 4, cart.Quantity("item_1"))
	assert.InDelta(t, 200.0, cart.Subtotal(), 1e-9)
}

func TestCart_AddItemSnapshotsListing(t *testing.T) {
	cart := NewCart(0.18)
	book := cartItem("item_1", "Book", 50)
	book.Images = []string{"https://img.example/1.png"}

	require.NoError(t, cart.AddItem(book, 1))
	book.Price = 500
	book.Images[0] = "https://img.example/changed.png"

	line := cart.Lines()[0]
	assert.InDelta(t, 50.0, line.Item.Price, 1e-9)
	assert.Equal(t, "https://img.example/1.png", line.Item.Images[0])
	assert.InDelta(t, 50.0, cart.Subtotal(), 1e-9)
}

func TestCart_AddInvalidItem(t *testing.T) {
	tests := []struct {
		name     string
		item     *Item
		quantity int
	}{
		{name: "nil item", item: nil, quantity: 1},
		{name: "missing id", item: &Item{Name: "Book", Price: 1}, quantity: 1},
		{name: "missing name", item: &Item{ID: "item_1", Price: 1}, quantity: 1},
		{name: "nan price", item: &Item{ID: "item_1", Name: "Book", Price: math.NaN()}, quantity: 1},
		{name: "negative price", item: &Item{ID: "item_1", Name: "Book", Price: -5}, quantity: 1},
		{name: "zero quantity", item: cartItem("item_1", "Book", 5), quantity: 0},
		{name: "negative quantity", item: cartItem("item_1", "Book", 5), quantity: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart(0.18)
			err := cart.AddItem(tt.item, tt.quantity)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCartItem))
			assert.True(t, cart.IsEmpty())
			assert.InDelta(t, 0.0, cart.FinalTotal(), 1e-9)
		})
	}
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	cart := NewCart(0.18)
	require.NoError(t, cart.AddItem(cartItem("item_1", "Book", 50), 1))
	require.NoError(t, cart.AddItem(cartItem("item_2", "Lamp", 30), 1))

	cart.SetQuantity("item_1", 3)
	assert.Equal(t, 3, cart.Quantity("item_1"))
	assert.InDelta(t, 180.0, cart.Subtotal(), 1e-9)

	cart.SetQuantity("missing", 4)
	assert.Len(t, cart.Lines(), 2)

	cart.SetQuantity("item_2", 0)
	assert.Equal(t, 0, cart.Quantity("item_2"))
	assert.Len(t, cart.Lines(), 1)

	cart.RemoveItem("item_1")
	assert.True(t, cart.IsEmpty())
	assert.InDelta(t, 0.0, cart.Subtotal(), 1e-9)
}

func TestCart_DiscountIsFixedAtApplyTime(t *testing.T) {
	cart := NewCart(0.18)
	require.NoError(t, cart.AddItem(cartItem("item_1", "Book", 50), 2))

	cart.ApplyDiscountPercent(10)
	assert.InDelta(t, 10.0, cart.Discount(), 1e-9)
	assert.InDelta(t, 108.0, cart.FinalTotal(), 1e-9)

	require.NoError(t, cart.AddItem(cartItem("item_2", "Lamp", 100), 1))
	assert.InDelta(t, 10.0, cart.Discount(), 1e-9)
	assert.InDelta(t, 200.0+36.0-10.0, cart.FinalTotal(), 1e-9)

	cart.RemoveDiscount()
	assert.InDelta(t, 236.0, cart.FinalTotal(), 1e-9)
}

func TestCart_ClearDropsDiscount(t *testing.T) {
	cart := NewCart(0.18)
	require.NoError(t, cart.AddItem(cartItem("item_1", "Book", 50), 2))
	cart.ApplyDiscountPercent(50)

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.InDelta(t, 0.0, cart.Discount(), 1e-9)
	assert.InDelta(t, 0.0, cart.FinalTotal(), 1e-9)
}

func TestCart_Checkout(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("empty cart", func(t *testing.T) {
		order, err := NewCart(0.18).Checkout("order_1", now)
		assert.Nil(t, order)
		assert.True(t, errors.Is(err, domainerrors.ErrEmptyCart))
	})

	t.Run("snapshots and clears", func(t *testing.T) {
		cart := NewCart(0.18)
		require.NoError(t, cart.AddItem(cartItem("item_1", "Book", 50), 2))

		order, err := cart.Checkout("order_1", now)
		require.NoError(t, err)

		assert.Equal(t, "order_1", order.ID)
		assert.Equal(t, now, order.CheckoutDate)
		assert.InDelta(t, 118.0, order.Total, 1e-9)
		assert.Len(t, order.Lines, 1)
		assert.Equal(t, 2, order.Summary.ItemCount)
		assert.True(t, cart.IsEmpty())
	})
}

func TestRestoreCart(t *testing.T) {
	state := CartState{
		TaxRate:  0.18,
		Discount: 5,
		Lines: []CartLine{
			{Item: ItemSnapshot{ID: "item_1", Name: "Book", Price: 50}, Quantity: 1},
			{Item: ItemSnapshot{ID: "item_1", Name: "Book", Price: 50}, Quantity: 1},
			{Item: ItemSnapshot{ID: "", Name: "Ghost", Price: 10}, Quantity: 1},
			{Item: ItemSnapshot{ID: "item_2", Name: "Lamp", Price: 10}, Quantity: 0},
		},
	}

	cart := RestoreCart(state)

	assert.Len(t, cart.Lines(), 1)
	assert.Equal(t, 2, cart.Quantity("item_1"))
	assert.InDelta(t, 100.0, cart.Subtotal(), 1e-9)
	assert.InDelta(t, 113.0, cart.FinalTotal(), 1e-9)
	assert.Equal(t, state.TaxRate, cart.State().TaxRate)
}

func TestCart_TotalsInvariant(t *testing.T) {
	cart := NewCart(0.18)
	steps := []func(){
		func() { _ = cart.AddItem(cartItem("item_1", "Book", 12.5), 3) },
		func() { _ = cart.AddItem(cartItem("item_2", "Lamp", 7.25), 1) },
		func() { cart.ApplyDiscountPercent(15) },
		func() { cart.SetQuantity("item_1", 1) },
		func() { cart.RemoveItem("item_2") },
	}

	for _, step := range steps {
		step()

		var subtotal float64
		for _, line := range cart.Lines() {
			subtotal += line.Item.Price * float64(line.Quantity)
		}
		assert.InDelta(t, subtotal, cart.Subtotal(), 1e-9)
		assert.InDelta(t, subtotal*0.18, cart.Tax(), 1e-9)
		assert.InDelta(t, cart.Subtotal()+cart.Tax()-cart.Discount(), cart.FinalTotal(), 1e-9)
	}
}
