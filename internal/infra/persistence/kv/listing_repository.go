package kv

import (
	"context"
	"log/slog"
	"slices"

	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	"campuscart/internal/infra/persistence/model"

	"github.com/pkg/errors"
)

// listingRepository implements repository.ListingRepository over the listed-items slot.
type listingRepository struct {
	slots *Slots
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(slots *Slots) repository.ListingRepository {
	return &listingRepository{slots: slots}
}

func (repo *listingRepository) records(ctx context.Context) ([]model.ItemRecord, error) {
	recs, _, err := LoadSlot(ctx, repo.slots, repository.SlotListedItems, []model.ItemRecord{})

	return recs, err
}

// List rehydrates every listing, skipping records that no longer validate.
func (repo *listingRepository) List(ctx context.Context) ([]*entity.Item, error) {
	recs, err := repo.records(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.Item, 0, len(recs))
	for _, rec := range recs {
		item, err := rec.ToDomain()
		if err != nil {
			repo.slots.logger.WarnContext(ctx, "Skipping unreadable item record",
				slog.String("slot", repository.SlotListedItems),
				slog.String("id", rec.ID),
				slog.Any("error", err),
			)

			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// FindByID retrieves a single listing.
func (repo *listingRepository) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	items, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(items, func(item *entity.Item) bool { return item.ID == id })
	if idx < 0 {
		return nil, repository.ErrItemNotFound
	}

	return items[idx], nil
}

// Append adds item at the end of the listing order.
func (repo *listingRepository) Append(ctx context.Context, item *entity.Item) error {
	recs, err := repo.records(ctx)
	if err != nil {
		return err
	}

	return repo.slots.Save(ctx, repository.SlotListedItems, append(recs, model.FromItem(item)))
}

// Update replaces the stored listing with the same id.
func (repo *listingRepository) Update(ctx context.Context, item *entity.Item) error {
	recs, err := repo.records(ctx)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(recs, func(rec model.ItemRecord) bool { return rec.ID == item.ID })
	if idx < 0 {
		return errors.WithStack(repository.ErrItemNotFound)
	}
	recs[idx] = model.FromItem(item)

	return repo.slots.Save(ctx, repository.SlotListedItems, recs)
}

// Delete removes the listing with id and reports whether it existed.
func (repo *listingRepository) Delete(ctx context.Context, id string) (bool, error) {
	recs, err := repo.records(ctx)
	if err != nil {
		return false, err
	}

	before := len(recs)
	recs = slices.DeleteFunc(recs, func(rec model.ItemRecord) bool { return rec.ID == id })
	if len(recs) == before {
		return false, nil
	}

	if err := repo.slots.Save(ctx, repository.SlotListedItems, recs); err != nil {
		return false, err
	}

	return true, nil
}
