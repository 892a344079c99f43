// Package redis provides a repository.KVStore backed by a Redis server, so
// several processes can share one marketplace state.
package redis

import (
	"context"
	"time"

	"campuscart/internal/domain/repository"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Store keeps every slot as a plain Redis string.
type Store struct {
	rdb goredis.UniversalClient
}

var _ repository.KVStore = (*Store)(nil)

// NewClient opens a client for addr.
func NewClient(addr, password string, db int, timeout time.Duration) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
}

// New wraps an existing client.
func New(rdb goredis.UniversalClient) *Store {
	return &Store{rdb: rdb}
}

// Get returns the stored value. redis.Nil means a missing key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "redis get %s", key)
	}

	return data, true, nil
}

// Set overwrites key with no expiry; slots persist until removed.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}

	return nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "redis del %s", key)
	}

	return nil
}

// Apply sends every mutation in one MULTI/EXEC block.
func (s *Store) Apply(ctx context.Context, mutations []repository.Mutation) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, m := range mutations {
			if m.Delete {
				pipe.Del(ctx, m.Key)

				continue
			}
			pipe.Set(ctx, m.Key, m.Value, 0)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "redis apply")
	}

	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return errors.Wrap(s.rdb.Ping(ctx).Err(), "redis ping")
}

// Close releases the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
