// Package kv implements the slot repositories on top of any repository.KVStore.
// Each slot holds one JSON document; writes overwrite the whole slot and reads
// that hit malformed JSON fall back to the slot's default value.
package kv

import (
	"context"
	"encoding/json"
	"log/slog"

	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/repository"

	"github.com/pkg/errors"
)

// Slots reads and writes named slots of a store. An optional prefix
// namespaces every slot key, e.g. "campusCart:" + "cart".
type Slots struct {
	store  repository.KVStore
	prefix string
	logger *slog.Logger
}

// NewSlots binds slot access to store.
func NewSlots(store repository.KVStore, prefix string, logger *slog.Logger) *Slots {
	return &Slots{
		store:  store,
		prefix: prefix,
		logger: logger,
	}
}

// Key returns the store key of slot.
func (s *Slots) Key(slot string) string {
	return s.prefix + slot
}

// Store returns the underlying store.
func (s *Slots) Store() repository.KVStore {
	return s.store
}

// withStore returns slot access with the same prefix and logger over another store.
func (s *Slots) withStore(store repository.KVStore) *Slots {
	return &Slots{
		store:  store,
		prefix: s.prefix,
		logger: s.logger,
	}
}

// Save encodes value and overwrites slot with it.
func (s *Slots) Save(ctx context.Context, slot string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode slot %q", slot)
	}

	if err := s.store.Set(ctx, s.Key(slot), data); err != nil {
		return errors.Wrapf(err, "write slot %q", slot)
	}

	return nil
}

// Remove deletes slot.
func (s *Slots) Remove(ctx context.Context, slot string) error {
	if err := s.store.Remove(ctx, s.Key(slot)); err != nil {
		return errors.Wrapf(err, "remove slot %q", slot)
	}

	return nil
}

// LoadSlot decodes slot into a T. A missing slot yields def. A slot holding
// malformed JSON also yields def; the decode failure is logged and never
// returned. Only store failures are returned.
func LoadSlot[T any](ctx context.Context, s *Slots, slot string, def T) (T, bool, error) {
	data, ok, err := s.store.Get(ctx, s.Key(slot))
	if err != nil {
		return def, false, errors.Wrapf(err, "read slot %q", slot)
	}
	if !ok || len(data) == 0 {
		return def, false, nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		parseErr := domainerrors.NewStorageParseError(err, slot)
		s.logger.WarnContext(ctx, "Falling back to default for unreadable slot",
			slog.String("slot", slot),
			slog.String("code", parseErr.ErrorCode()),
			slog.Any("error", parseErr),
		)

		return def, false, nil
	}

	return value, true, nil
}
