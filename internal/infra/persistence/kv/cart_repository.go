package kv

import (
	"context"
	"time"

	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	"campuscart/internal/infra/persistence/model"
)

// cartRepository implements repository.CartRepository over the cart slot.
type cartRepository struct {
	slots *Slots
	clock entity.Clock
}

// NewCartRepository is the constructor for cartRepository. A nil clock means time.Now.
func NewCartRepository(slots *Slots, clock entity.Clock) repository.CartRepository {
	if clock == nil {
		clock = time.Now
	}

	return &cartRepository{slots: slots, clock: clock}
}

// Load rehydrates the stored cart, or returns nil when there is none.
func (repo *cartRepository) Load(ctx context.Context) (*entity.Cart, error) {
	rec, ok, err := LoadSlot(ctx, repo.slots, repository.SlotCart, model.CartRecord{})
	if err != nil || !ok {
		return nil, err
	}

	return rec.ToDomain(), nil
}

// Save overwrites the stored cart.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	return repo.slots.Save(ctx, repository.SlotCart, model.FromCart(cart, repo.clock()))
}
