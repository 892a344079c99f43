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

// userRepository implements repository.UserRepository over the known-users slot.
type userRepository struct {
	slots *Slots
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(slots *Slots) repository.UserRepository {
	return &userRepository{slots: slots}
}

func (repo *userRepository) records(ctx context.Context) ([]model.PersonRecord, error) {
	recs, _, err := LoadSlot(ctx, repo.slots, repository.SlotKnownUsers, []model.PersonRecord{})

	return recs, err
}

// List rehydrates every known person. Records that no longer validate are
// skipped with a warning.
func (repo *userRepository) List(ctx context.Context) ([]*entity.Person, error) {
	recs, err := repo.records(ctx)
	if err != nil {
		return nil, err
	}

	people := make([]*entity.Person, 0, len(recs))
	for _, rec := range recs {
		person, err := rec.ToDomain()
		if err != nil {
			repo.slots.logger.WarnContext(ctx, "Skipping unreadable person record",
				slog.String("slot", repository.SlotKnownUsers),
				slog.String("id", rec.ID),
				slog.Any("error", err),
			)

			continue
		}
		people = append(people, person)
	}

	return people, nil
}

// FindByID retrieves a single person by id.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.Person, error) {
	return repo.find(ctx, func(p *entity.Person) bool {
		return p.ID == id
	})
}

// FindByEmail retrieves the person with the given email and role.
func (repo *userRepository) FindByEmail(ctx context.Context, email string, role entity.Role) (*entity.Person, error) {
	return repo.find(ctx, func(p *entity.Person) bool {
		return p.Email == email && p.Role() == role
	})
}

func (repo *userRepository) find(ctx context.Context, match func(*entity.Person) bool) (*entity.Person, error) {
	people, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(people, match)
	if idx < 0 {
		return nil, repository.ErrUserNotFound
	}

	return people[idx], nil
}

// AddIfAbsent appends person unless its id is already known.
func (repo *userRepository) AddIfAbsent(ctx context.Context, person *entity.Person) (bool, error) {
	recs, err := repo.records(ctx)
	if err != nil {
		return false, err
	}

	if slices.ContainsFunc(recs, func(rec model.PersonRecord) bool { return rec.ID == person.ID }) {
		return false, nil
	}

	recs = append(recs, model.FromPerson(person))
	if err := repo.slots.Save(ctx, repository.SlotKnownUsers, recs); err != nil {
		return false, err
	}

	return true, nil
}

// Update replaces the stored record with the same id.
func (repo *userRepository) Update(ctx context.Context, person *entity.Person) error {
	recs, err := repo.records(ctx)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(recs, func(rec model.PersonRecord) bool { return rec.ID == person.ID })
	if idx < 0 {
		return errors.WithStack(repository.ErrUserNotFound)
	}
	recs[idx] = model.FromPerson(person)

	return repo.slots.Save(ctx, repository.SlotKnownUsers, recs)
}

// sessionRepository implements repository.SessionRepository over the current-user slot.
type sessionRepository struct {
	slots *Slots
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(slots *Slots) repository.SessionRepository {
	return &sessionRepository{slots: slots}
}

// Current rehydrates the logged-in person. An unreadable record counts as
// nobody being logged in.
func (repo *sessionRepository) Current(ctx context.Context) (*entity.Person, error) {
	rec, ok, err := LoadSlot(ctx, repo.slots, repository.SlotCurrentUser, model.PersonRecord{})
	if err != nil || !ok {
		return nil, err
	}

	person, err := rec.ToDomain()
	if err != nil {
		repo.slots.logger.WarnContext(ctx, "Ignoring unreadable current user",
			slog.String("slot", repository.SlotCurrentUser),
			slog.Any("error", err),
		)

		return nil, nil
	}

	return person, nil
}

// SetCurrent stores person as the logged-in person.
func (repo *sessionRepository) SetCurrent(ctx context.Context, person *entity.Person) error {
	return repo.slots.Save(ctx, repository.SlotCurrentUser, model.FromPerson(person))
}

// ClearCurrent removes the logged-in person.
func (repo *sessionRepository) ClearCurrent(ctx context.Context) error {
	return repo.slots.Remove(ctx, repository.SlotCurrentUser)
}
