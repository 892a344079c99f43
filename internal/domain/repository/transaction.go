package repository

import "context"

// TransactionManager groups several slot writes so that they become visible
// together. This lets a usecase update the session, the known users and the
// activity feed without exposing a half-written state.
type TransactionManager interface {
	// Execute runs fn against repositories bound to a staged view of the store.
	// Reads inside fn see the staged writes. If fn returns an error, nothing is
	// written. Otherwise every staged write is applied to the store at once.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repositories that share one store view.
type RepositoryFactory interface {
	// SessionRepo returns the current-user slot repository.
	SessionRepo() SessionRepository

	// UserRepo returns the known-users slot repository.
	UserRepo() UserRepository

	// BlockedRepo returns the blocked-ids slot repository.
	BlockedRepo() BlockedRepository

	// ActivityRepo returns the recent-activity slot repository.
	ActivityRepo() ActivityRepository

	// ListingRepo returns the listed-items slot repository.
	ListingRepo() ListingRepository

	// CartRepo returns the cart slot repository.
	CartRepo() CartRepository
}
