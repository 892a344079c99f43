package redis

import (
	"context"
	"testing"
	"time"

	"campuscart/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := New(NewClient(mr.Addr(), "", 0, time.Second))
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store, mr
}

func TestStore_GetSetRemove(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "campusCart:cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "campusCart:cart", []byte(`{"items":[]}`)))
	mr.CheckGet(t, "campusCart:cart", `{"items":[]}`)
	assert.Zero(t, mr.TTL("campusCart:cart"))

	got, ok, err := store.Get(ctx, "campusCart:cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"items":[]}`, string(got))

	require.NoError(t, store.Remove(ctx, "campusCart:cart"))
	assert.False(t, mr.Exists("campusCart:cart"))
}

func TestStore_Apply(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("current-user", `{}`))

	err := store.Apply(ctx, []repository.Mutation{
		{Key: "known-users", Value: []byte(`[]`)},
		{Key: "current-user", Delete: true},
	})
	require.NoError(t, err)

	mr.CheckGet(t, "known-users", `[]`)
	assert.False(t, mr.Exists("current-user"))
}

func TestStore_ServerDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	ctx := context.Background()
	require.Error(t, store.Ping(ctx))

	_, _, err := store.Get(ctx, "cart")
	require.Error(t, err)
}
