// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import "context"

// Slot names of the key-value store.
const (
	SlotCurrentUser    = "current-user"
	SlotKnownUsers     = "known-users"
	SlotBlockedIDs     = "blocked-ids"
	SlotRecentActivity = "recent-activity"
	SlotListedItems    = "listed-items"
	SlotCart           = "cart"
	SlotDiscussions    = "discussions"
)

// Mutation is one staged write. Delete removes the key instead of setting it.
type Mutation struct {
	Key    string
	Value  []byte
	Delete bool
}

// KVStore is the flat string-keyed store every slot lives in. Values are
// JSON documents; the store itself treats them as opaque bytes.
type KVStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Apply performs every mutation, in order, as one write.
	Apply(ctx context.Context, mutations []Mutation) error
}
