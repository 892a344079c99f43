package entity

import (
	"math"
	"slices"
	"time"

	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/pricing"
)

// ItemSnapshot is the item data a cart copies when an item is added. Later
// changes to the listing do not reach it.
type ItemSnapshot struct {
	ID             string
	Name           string
	Category       Category
	Price          float64
	Description    string
	SellerID       string
	SellerName     string
	Images         []string
	WhatsAppQRCode string
	CreatedAt      time.Time
}

// CartLine is one entry of a cart.
type CartLine struct {
	Item     ItemSnapshot
	Quantity int
}

// Cart holds the lines of one browsing session. Every mutation recomputes
// the totals before returning.
type Cart struct {
	lines      []CartLine
	taxRate    float64
	subtotal   float64
	tax        float64
	discount   float64
	finalTotal float64
}

// CartSummary is the totals view of a cart, including formatted amounts.
type CartSummary struct {
	Lines               []CartLine
	Subtotal            float64
	Tax                 float64
	Discount            float64
	FinalTotal          float64
	ItemCount           int
	UniqueItems         int
	FormattedSubtotal   string
	FormattedTax        string
	FormattedDiscount   string
	FormattedFinalTotal string
}

// Order is the immutable result of a checkout.
type Order struct {
	ID           string
	Lines        []CartLine
	Total        float64
	Summary      CartSummary
	CheckoutDate time.Time
}

// CartState is everything needed to rebuild a cart from storage. Totals are
// derived, so only lines, tax rate and discount are kept.
type CartState struct {
	Lines    []CartLine
	TaxRate  float64
	Discount float64
}

// NewCart returns an empty cart taxed at taxRate.
func NewCart(taxRate float64) *Cart {
	return &Cart{taxRate: taxRate}
}

// RestoreCart rebuilds a stored cart and recomputes its totals.
// Lines without an id or with a non-positive quantity are dropped.
func RestoreCart(state CartState) *Cart {
	cart := NewCart(state.TaxRate)
	for _, line := range state.Lines {
		if line.Item.ID == "" || line.Quantity <= 0 {
			continue
		}
		if idx := cart.indexOf(line.Item.ID); idx >= 0 {
			cart.lines[idx].Quantity += line.Quantity

			continue
		}
		line.Item.Images = slices.Clone(line.Item.Images)
		cart.lines = append(cart.lines, line)
	}
	cart.discount = state.Discount
	cart.recompute()

	return cart
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

// TaxRate returns the rate applied to the subtotal.
func (c *Cart) TaxRate() float64 { return c.taxRate }

// Subtotal returns the sum of price * quantity over all lines.
func (c *Cart) Subtotal() float64 { return c.subtotal }

// Tax returns Subtotal * TaxRate.
func (c *Cart) Tax() float64 { return c.tax }

// Discount returns the absolute discount currently applied.
func (c *Cart) Discount() float64 { return c.discount }

// FinalTotal returns Subtotal + Tax - Discount.
func (c *Cart) FinalTotal() float64 { return c.finalTotal }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, line := range c.lines {
		n += line.Quantity
	}

	return n
}

// Quantity returns the stored quantity for itemID, or 0.
func (c *Cart) Quantity(itemID string) int {
	if idx := c.indexOf(itemID); idx >= 0 {
		return c.lines[idx].Quantity
	}

	return 0
}

// AddItem snapshots item into the cart, or adds quantity to its existing line.
// Items without an id or name, with an invalid price, or a non-positive
// quantity are rejected and leave the cart untouched.
func (c *Cart) AddItem(item *Item, quantity int) error {
	if err := validateCartItem(item, quantity); err != nil {
		return err
	}

	if idx := c.indexOf(item.ID); idx >= 0 {
		c.lines[idx].Quantity += quantity
	} else {
		c.lines = append(c.lines, CartLine{Item: item.Snapshot(), Quantity: quantity})
	}
	c.recompute()

	return nil
}

func validateCartItem(item *Item, quantity int) error {
	switch {
	case item == nil:
		return domainerrors.ErrInvalidCartItem.WithDetails("item is nil")
	case item.ID == "" || item.Name == "":
		return domainerrors.ErrInvalidCartItem.WithDetails("item id and name are required")
	case math.IsNaN(item.Price) || math.IsInf(item.Price, 0):
		return domainerrors.ErrInvalidCartItem.WithDetails("item price is not a number")
	case item.Price < 0:
		return domainerrors.ErrInvalidCartItem.WithDetails("item price cannot be negative")
	case quantity <= 0:
		return domainerrors.ErrInvalidCartItem.WithDetails("quantity must be positive")
	}

	return nil
}

// RemoveItem deletes the line for itemID. Unknown ids are ignored.
func (c *Cart) RemoveItem(itemID string) {
	if idx := c.indexOf(itemID); idx >= 0 {
		c.lines = slices.Delete(c.lines, idx, idx+1)
	}
	c.recompute()
}

// SetQuantity sets the stored quantity for itemID; zero or less removes the line.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)

		return
	}

	if idx := c.indexOf(itemID); idx >= 0 {
		c.lines[idx].Quantity = quantity
	}
	c.recompute()
}

// Clear empties the cart and drops any discount.
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = 0
	c.recompute()
}

// ApplyDiscountPercent fixes the discount at percent of the current subtotal.
// The amount is not re-derived when the subtotal later changes.
func (c *Cart) ApplyDiscountPercent(percent float64) {
	c.discount = pricing.DiscountAmount(c.subtotal, percent)
	c.recompute()
}

// RemoveDiscount drops the discount.
func (c *Cart) RemoveDiscount() {
	c.discount = 0
	c.recompute()
}

// Summary returns the totals and formatted amounts.
func (c *Cart) Summary() CartSummary {
	return CartSummary{
		Lines:               c.Lines(),
		Subtotal:            c.subtotal,
		Tax:                 c.tax,
		Discount:            c.discount,
		FinalTotal:          c.finalTotal,
		ItemCount:           c.ItemCount(),
		UniqueItems:         len(c.lines),
		FormattedSubtotal:   pricing.FormatCurrency(c.subtotal),
		FormattedTax:        pricing.FormatCurrency(c.tax),
		FormattedDiscount:   pricing.FormatCurrency(c.discount),
		FormattedFinalTotal: pricing.FormatCurrency(c.finalTotal),
	}
}

// Checkout snapshots the cart into an order and clears it.
func (c *Cart) Checkout(orderID string, now time.Time) (*Order, error) {
	if c.IsEmpty() {
		return nil, domainerrors.ErrEmptyCart
	}

	order := &Order{
		ID:           orderID,
		Lines:        c.Lines(),
		Total:        c.finalTotal,
		Summary:      c.Summary(),
		CheckoutDate: now,
	}
	c.Clear()

	return order, nil
}

// State returns what must be persisted to rebuild the cart.
func (c *Cart) State() CartState {
	return CartState{
		Lines:    c.Lines(),
		TaxRate:  c.taxRate,
		Discount: c.discount,
	}
}

func (c *Cart) indexOf(itemID string) int {
	return slices.IndexFunc(c.lines, func(line CartLine) bool {
		return line.Item.ID == itemID
	})
}

func (c *Cart) recompute() {
	lines := make([]pricing.Line, len(c.lines))
	for i, line := range c.lines {
		lines[i] = pricing.Line{Price: line.Item.Price, Quantity: line.Quantity}
	}

	c.subtotal = pricing.Summarize(lines).Total
	c.tax = pricing.Tax(c.subtotal, c.taxRate)
	c.finalTotal = c.subtotal + c.tax - c.discount
}
