package kv

import (
	"context"
	"slices"

	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	"campuscart/internal/infra/persistence/model"
)

// blockedRepository implements repository.BlockedRepository over the blocked-ids slot.
type blockedRepository struct {
	slots *Slots
}

// NewBlockedRepository is the constructor for blockedRepository.
func NewBlockedRepository(slots *Slots) repository.BlockedRepository {
	return &blockedRepository{slots: slots}
}

// List returns the blocked ids in insertion order.
func (repo *blockedRepository) List(ctx context.Context) ([]string, error) {
	ids, _, err := LoadSlot(ctx, repo.slots, repository.SlotBlockedIDs, []string{})

	return ids, err
}

// Contains reports whether id is blocked.
func (repo *blockedRepository) Contains(ctx context.Context, id string) (bool, error) {
	ids, err := repo.List(ctx)
	if err != nil {
		return false, err
	}

	return slices.Contains(ids, id), nil
}

// Add inserts id unless it is already present.
func (repo *blockedRepository) Add(ctx context.Context, id string) error {
	ids, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}

	return repo.slots.Save(ctx, repository.SlotBlockedIDs, append(ids, id))
}

// Remove deletes every occurrence of id and rewrites the slot.
func (repo *blockedRepository) Remove(ctx context.Context, id string) error {
	ids, err := repo.List(ctx)
	if err != nil {
		return err
	}

	ids = slices.DeleteFunc(ids, func(blocked string) bool { return blocked == id })

	return repo.slots.Save(ctx, repository.SlotBlockedIDs, ids)
}

// activityRepository implements repository.ActivityRepository over the recent-activity slot.
type activityRepository struct {
	slots *Slots
}

// NewActivityRepository is the constructor for activityRepository.
func NewActivityRepository(slots *Slots) repository.ActivityRepository {
	return &activityRepository{slots: slots}
}

// Recent returns the feed, newest first.
func (repo *activityRepository) Recent(ctx context.Context) ([]entity.Activity, error) {
	recs, _, err := LoadSlot(ctx, repo.slots, repository.SlotRecentActivity, []model.ActivityRecord{})
	if err != nil {
		return nil, err
	}

	feed := make([]entity.Activity, 0, len(recs))
	for _, rec := range recs {
		feed = append(feed, rec.ToDomain())
	}

	return feed, nil
}

// Push prepends entry and trims the feed to limit entries.
func (repo *activityRepository) Push(ctx context.Context, entry entity.Activity, limit int) error {
	feed, err := repo.Recent(ctx)
	if err != nil {
		return err
	}

	feed = entity.PushActivity(feed, entry, limit)
	recs := make([]model.ActivityRecord, 0, len(feed))
	for _, a := range feed {
		recs = append(recs, model.FromActivity(a))
	}

	return repo.slots.Save(ctx, repository.SlotRecentActivity, recs)
}
