package repository

import (
	"context"
	"errors"

	"campuscart/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrItemNotFound is returned when a listing is not found.
var ErrItemNotFound = errors.New("item not found")

// UserRepository manages the ordered list of people who have logged in.
type UserRepository interface {
	// List returns every known person, rehydrated, in first-login order.
	List(ctx context.Context) ([]*entity.Person, error)

	// FindByID retrieves a single person by id.
	FindByID(ctx context.Context, id string) (*entity.Person, error)

	// FindByEmail retrieves the person with the given email and role.
	FindByEmail(ctx context.Context, email string, role entity.Role) (*entity.Person, error)

	// AddIfAbsent appends person unless a person with the same id is known.
	// It reports whether person was appended.
	AddIfAbsent(ctx context.Context, person *entity.Person) (bool, error)

	// Update replaces the stored record with the same id.
	Update(ctx context.Context, person *entity.Person) error
}

// SessionRepository manages the current-user slot.
type SessionRepository interface {
	// Current returns the logged-in person, or nil when nobody is logged in.
	Current(ctx context.Context) (*entity.Person, error)

	// SetCurrent stores person as the logged-in person.
	SetCurrent(ctx context.Context, person *entity.Person) error

	// ClearCurrent removes the logged-in person.
	ClearCurrent(ctx context.Context) error
}

// BlockedRepository manages the set of blocked person ids.
type BlockedRepository interface {
	// List returns the blocked ids in insertion order.
	List(ctx context.Context) ([]string, error)

	// Contains reports whether id is blocked.
	Contains(ctx context.Context, id string) (bool, error)

	// Add inserts id; adding a blocked id again changes nothing.
	Add(ctx context.Context, id string) error

	// Remove deletes id; removing an unblocked id changes nothing.
	Remove(ctx context.Context, id string) error
}

// ActivityRepository manages the bounded recent-activity feed.
type ActivityRepository interface {
	// Recent returns the feed, newest first.
	Recent(ctx context.Context) ([]entity.Activity, error)

	// Push prepends entry and keeps at most limit entries.
	Push(ctx context.Context, entry entity.Activity, limit int) error
}

// ListingRepository manages the listed-items slot.
type ListingRepository interface {
	// List returns every listing, rehydrated, in listing order.
	List(ctx context.Context) ([]*entity.Item, error)

	// FindByID retrieves a single listing.
	FindByID(ctx context.Context, id string) (*entity.Item, error)

	// Append adds item at the end of the listing order.
	Append(ctx context.Context, item *entity.Item) error

	// Update replaces the stored listing with the same id.
	Update(ctx context.Context, item *entity.Item) error

	// Delete removes the listing with id and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// CartRepository manages the cart slot.
type CartRepository interface {
	// Load returns the stored cart, or nil when the slot is empty.
	Load(ctx context.Context) (*entity.Cart, error)

	// Save overwrites the stored cart.
	Save(ctx context.Context, cart *entity.Cart) error
}
