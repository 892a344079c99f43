package kv

import (
	"context"
	"slices"
	"sync"

	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"

	"github.com/pkg/errors"
)

// slotTransactionManager implements repository.TransactionManager by staging
// writes in memory and applying them to the store in one Apply call.
type slotTransactionManager struct {
	slots *Slots
	clock entity.Clock
}

// slotRepositoryFactory hands out repositories bound to one store view.
type slotRepositoryFactory struct {
	slots *Slots
	clock entity.Clock
}

// NewRepositoryFactory returns repositories that read and write slots directly.
func NewRepositoryFactory(slots *Slots, clock entity.Clock) repository.RepositoryFactory {
	return &slotRepositoryFactory{slots: slots, clock: clock}
}

// SessionRepo returns the current-user repository.
func (f *slotRepositoryFactory) SessionRepo() repository.SessionRepository {
	return NewSessionRepository(f.slots)
}

// UserRepo returns the known-users repository.
func (f *slotRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.slots)
}

// BlockedRepo returns the blocked-ids repository.
func (f *slotRepositoryFactory) BlockedRepo() repository.BlockedRepository {
	return NewBlockedRepository(f.slots)
}

// ActivityRepo returns the recent-activity repository.
func (f *slotRepositoryFactory) ActivityRepo() repository.ActivityRepository {
	return NewActivityRepository(f.slots)
}

// ListingRepo returns the listed-items repository.
func (f *slotRepositoryFactory) ListingRepo() repository.ListingRepository {
	return NewListingRepository(f.slots)
}

// CartRepo returns the cart repository.
func (f *slotRepositoryFactory) CartRepo() repository.CartRepository {
	return NewCartRepository(f.slots, f.clock)
}

// NewTransactionManager is the constructor for slotTransactionManager.
func NewTransactionManager(slots *Slots, clock entity.Clock) repository.TransactionManager {
	return &slotTransactionManager{slots: slots, clock: clock}
}

// Execute runs fn against a staged view of the store and applies the staged
// writes only if fn succeeds.
func (tm *slotTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	staged := newStagedStore(tm.slots.Store())
	factory := &slotRepositoryFactory{
		slots: tm.slots.withStore(staged),
		clock: tm.clock,
	}

	if err := fn(factory); err != nil {
		// Nothing reached the store; dropping the staged writes is the rollback.
		return err
	}

	if err := staged.commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit slot writes")
	}

	return nil
}

// stagedStore buffers writes over a base store. Reads see buffered writes first.
type stagedStore struct {
	base repository.KVStore

	mu        sync.Mutex
	pending   map[string]repository.Mutation
	mutations []repository.Mutation
}

func newStagedStore(base repository.KVStore) *stagedStore {
	return &stagedStore{
		base:    base,
		pending: make(map[string]repository.Mutation),
	}
}

func (s *stagedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	m, ok := s.pending[key]
	s.mu.Unlock()

	if ok {
		if m.Delete {
			return nil, false, nil
		}

		return slices.Clone(m.Value), true, nil
	}

	return s.base.Get(ctx, key)
}

func (s *stagedStore) Set(_ context.Context, key string, value []byte) error {
	s.stage(repository.Mutation{Key: key, Value: slices.Clone(value)})

	return nil
}

func (s *stagedStore) Remove(_ context.Context, key string) error {
	s.stage(repository.Mutation{Key: key, Delete: true})

	return nil
}

func (s *stagedStore) Apply(_ context.Context, mutations []repository.Mutation) error {
	for _, m := range mutations {
		m.Value = slices.Clone(m.Value)
		s.stage(m)
	}

	return nil
}

func (s *stagedStore) stage(m repository.Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[m.Key] = m
	s.mutations = append(s.mutations, m)
}

func (s *stagedStore) commit(ctx context.Context) error {
	s.mu.Lock()
	mutations := s.mutations
	s.mutations = nil
	s.pending = make(map[string]repository.Mutation)
	s.mu.Unlock()

	if len(mutations) == 0 {
		return nil
	}

	return s.base.Apply(ctx, mutations)
}
