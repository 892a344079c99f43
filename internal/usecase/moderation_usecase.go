package usecase

import (
	"context"

	"campuscart/internal/domain/entity"
)

// ModerationUsecase defines the interface for admin moderation operations.
type ModerationUsecase interface {
	// BlockUser adds id to the blocked set. Blocking twice is a no-op.
	// An active session of the blocked person is left alone; the block
	// applies from the next login.
	BlockUser(ctx context.Context, id string) error

	// UnblockUser removes id from the blocked set. Unblocking an unblocked id is a no-op.
	UnblockUser(ctx context.Context, id string) error

	// BlockedIDs returns the blocked set in insertion order.
	BlockedIDs(ctx context.Context) ([]string, error)

	// IsBlocked reports whether id is in the blocked set.
	IsBlocked(ctx context.Context, id string) (bool, error)

	// BlockPerson is the admin flow: actor must be able to moderate and may
	// not block itself. The blocked set and the known user record are updated together.
	BlockPerson(ctx context.Context, actor *entity.Person, targetID, reason string) error

	// UnblockPerson reverses BlockPerson.
	UnblockPerson(ctx context.Context, actor *entity.Person, targetID string) error

	// DeleteListing removes a listing. Only people who can moderate may do this.
	DeleteListing(ctx context.Context, actor *entity.Person, itemID string) error
}
