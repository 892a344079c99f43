// Package file provides a repository.KVStore that keeps one JSON file per
// slot in a directory, so state survives process restarts the way browser
// storage survives page reloads.
package file

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"campuscart/internal/domain/repository"

	"github.com/pkg/errors"
)

const fileExt = ".json"

// Store maps each key to <dir>/<escaped key>.json.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ repository.KVStore = (*Store)(nil)

// New creates dir if needed and returns a store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage directory %s", dir)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

// Get reads the slot file. A missing file means a missing key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "read %s", key)
	}

	return data, true, nil
}

// Set replaces the slot file atomically.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(key, value)
}

// Remove deletes the slot file.
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove(key)
}

// Apply writes every mutation while holding the store lock. Each file is
// replaced atomically; a failure stops at the first failing mutation.
func (s *Store) Apply(_ context.Context, mutations []repository.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range mutations {
		var err error
		if m.Delete {
			err = s.remove(m.Key)
		} else {
			err = s.write(m.Key, m.Value)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".slot-*")
	if err != nil {
		return errors.Wrapf(err, "write %s", key)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()

		return errors.Wrapf(err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", key)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return errors.Wrapf(err, "write %s", key)
	}

	return nil
}

func (s *Store) remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "remove %s", key)
	}

	return nil
}
