package impl

import (
	"context"
	"log/slog"

	"campuscart/config"
	"campuscart/internal/domain/entity"
	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/pricing"
	"campuscart/internal/domain/repository"
	logs "campuscart/internal/infra/log"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
)

// cartService implements the CartUsecase interface. The cart itself lives in
// the cart slot; each call loads it, applies one change and saves it back.
type cartService struct {
	txManager repository.TransactionManager
	ids       entity.IDGenerator
	clock     entity.Clock
	taxRate   float64
	logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	txManager repository.TransactionManager,
	ids entity.IDGenerator,
	clock entity.Clock,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CartUsecase {
	taxRate := pricing.DefaultTaxRate
	if cfg != nil && cfg.Cart != nil && cfg.Cart.TaxRate != nil {
		taxRate = *cfg.Cart.TaxRate
	}

	return &cartService{
		txManager: txManager,
		ids:       ids,
		clock:     clock,
		taxRate:   taxRate,
		logger:    logger,
	}
}

// log returns a run-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return logs.LoggerOrDefault(ctx, srv.logger)
}

func (srv *cartService) load(ctx context.Context, cartRepo repository.CartRepository) (*entity.Cart, error) {
	cart, err := cartRepo.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}
	if cart == nil {
		cart = entity.NewCart(srv.taxRate)
	}

	return cart, nil
}

// mutate loads the cart, applies change and saves the result.
func (srv *cartService) mutate(ctx context.Context, change func(*entity.Cart) error) (*entity.CartSummary, error) {
	var summary entity.CartSummary

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		cart, err := srv.load(ctx, cartRepo)
		if err != nil {
			return err
		}
		if err := change(cart); err != nil {
			return err
		}
		if err := cartRepo.Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}
		summary = cart.Summary()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// Load returns the stored cart, or a new empty one.
func (srv *cartService) Load(ctx context.Context) (*entity.Cart, error) {
	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		cart, err = srv.load(ctx, repoFactory.CartRepo())

		return err
	})

	if err != nil {
		srv.log(ctx).Error("Failed to load cart", slog.Any("error", err))

		return nil, err
	}

	return cart, nil
}

// AddItem adds quantity of item. Invalid items leave the cart as it was.
func (srv *cartService) AddItem(ctx context.Context, item *entity.Item, quantity int) (*entity.CartSummary, error) {
	srv.log(ctx).Debug("Adding item to cart", slog.Int("quantity", quantity))

	summary, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		return cart.AddItem(item, quantity)
	})
	if errors.Is(err, domainerrors.ErrInvalidCartItem) {
		srv.log(ctx).Warn("Ignoring invalid cart item", slog.Any("error", err))

		return srv.Summary(ctx)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to add item to cart", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to add item to cart")
	}

	return summary, nil
}

// RemoveItem drops the line for itemID.
func (srv *cartService) RemoveItem(ctx context.Context, itemID string) (*entity.CartSummary, error) {
	srv.log(ctx).Debug("Removing item from cart", slog.String("item_id", itemID))

	summary, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		cart.RemoveItem(itemID)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to remove item from cart", slog.Any("error", err), slog.String("item_id", itemID))

		return nil, errors.Wrap(err, "failed to remove item from cart")
	}

	return summary, nil
}

// SetQuantity changes the quantity of itemID.
func (srv *cartService) SetQuantity(ctx context.Context, itemID string, quantity int) (*entity.CartSummary, error) {
	summary, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		cart.SetQuantity(itemID, quantity)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update cart quantity", slog.Any("error", err), slog.String("item_id", itemID))

		return nil, errors.Wrap(err, "failed to update cart quantity")
	}

	return summary, nil
}

// Clear empties the cart.
func (srv *cartService) Clear(ctx context.Context) error {
	_, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		cart.Clear()

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to clear cart", slog.Any("error", err))

		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// ApplyDiscountPercent fixes the discount at percent of the current subtotal.
func (srv *cartService) ApplyDiscountPercent(ctx context.Context, percent float64) (*entity.CartSummary, error) {
	summary, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		cart.ApplyDiscountPercent(percent)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to apply discount", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to apply discount")
	}

	return summary, nil
}

// RemoveDiscount drops the discount.
func (srv *cartService) RemoveDiscount(ctx context.Context) (*entity.CartSummary, error) {
	summary, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		cart.RemoveDiscount()

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to remove discount", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to remove discount")
	}

	return summary, nil
}

// Summary returns the cart totals.
func (srv *cartService) Summary(ctx context.Context) (*entity.CartSummary, error) {
	cart, err := srv.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize cart")
	}
	summary := cart.Summary()

	return &summary, nil
}

// Checkout turns the cart into an order and saves the emptied cart.
func (srv *cartService) Checkout(ctx context.Context) (*entity.Order, error) {
	srv.log(ctx).Info("Checking out")

	var order *entity.Order

	_, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		if cart.IsEmpty() {
			return domainerrors.ErrEmptyCart
		}

		var err error
		order, err = cart.Checkout(srv.ids.Next(entity.OrderIDPrefix), srv.clock.Now())

		return err
	})
	if err != nil {
		srv.log(ctx).Error("Failed to check out", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check out")
	}
	srv.log(ctx).Info("Successfully checked out",
		slog.String("order_id", order.ID),
		slog.Int("items", order.Summary.ItemCount),
		slog.String("total", order.Summary.FormattedFinalTotal),
	)

	return order, nil
}
