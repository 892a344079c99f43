package usecase

import (
	"context"

	"campuscart/internal/domain/entity"
)

// CartUsecase defines the interface for the shopping cart of the session.
// Every mutation is persisted before the call returns.
type CartUsecase interface {
	// Load returns the stored cart, or a new empty one.
	Load(ctx context.Context) (*entity.Cart, error)

	// AddItem adds quantity of item. An invalid item is logged and ignored.
	AddItem(ctx context.Context, item *entity.Item, quantity int) (*entity.CartSummary, error)

	// RemoveItem drops the line for itemID.
	RemoveItem(ctx context.Context, itemID string) (*entity.CartSummary, error)

	// SetQuantity changes the quantity of itemID; zero or less removes it.
	SetQuantity(ctx context.Context, itemID string, quantity int) (*entity.CartSummary, error)

	// Clear empties the cart.
	Clear(ctx context.Context) error

	// ApplyDiscountPercent fixes a discount at percent of the current subtotal.
	ApplyDiscountPercent(ctx context.Context, percent float64) (*entity.CartSummary, error)

	// RemoveDiscount drops the discount.
	RemoveDiscount(ctx context.Context) (*entity.CartSummary, error)

	// Summary returns the cart totals.
	Summary(ctx context.Context) (*entity.CartSummary, error)

	// Checkout turns the cart into an order and empties it.
	Checkout(ctx context.Context) (*entity.Order, error)
}
