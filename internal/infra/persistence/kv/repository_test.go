package kv

import (
	"context"
	"fmt"
	"testing"
	"time"

	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	"campuscart/internal/infra/persistence/memory"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	slots := newTestSlots(memory.New(), nil)
	repo := NewUserRepository(slots)
	factory := newTestFactory()
	ctx := context.Background()

	seller, err := factory.CreatePerson(entity.PersonInput{Name: "John", Email: "john@campus.edu", Role: entity.RoleSeller})
	require.NoError(t, err)
	item, err := factory.CreateItem(entity.ItemInput{Name: "Lamp", Price: 300, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, seller.AddListing(item))

	added, err := repo.AddIfAbsent(ctx, seller)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddIfAbsent(ctx, seller)
	require.NoError(t, err)
	assert.False(t, added)

	found, err := repo.FindByEmail(ctx, "john@campus.edu", entity.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, found.ID)
	require.Len(t, found.Listings(), 1)
	assert.Equal(t, item.ID, found.Listings()[0].ID)

	_, err = repo.FindByEmail(ctx, "john@campus.edu", entity.RoleBuyer)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	found.Block("spam")
	require.NoError(t, repo.Update(ctx, found))
	reloaded, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsBlocked)

	stranger, err := factory.CreatePerson(entity.PersonInput{Name: "X", Email: "x@campus.edu", Role: entity.RoleBuyer})
	require.NoError(t, err)
	assert.True(t, errors.Is(repo.Update(ctx, stranger), repository.ErrUserNotFound))
}

func TestUserRepository_SkipsUnreadableRecords(t *testing.T) {
	store := memory.New()
	slots := newTestSlots(store, nil)
	ctx := context.Background()

	raw := `[{"id":"user_1","name":"A","email":"a@campus.edu","role":"buyer"},` +
		`{"id":"user_2","name":"B","email":"b@campus.edu","role":"guest"}]`
	require.NoError(t, store.Set(ctx, slots.Key(repository.SlotKnownUsers), []byte(raw)))

	people, err := NewUserRepository(slots).List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "user_1", people[0].ID)
}

func TestSessionRepository(t *testing.T) {
	store := memory.New()
	slots := newTestSlots(store, nil)
	repo := NewSessionRepository(slots)
	ctx := context.Background()

	current, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	admin, err := newTestFactory().CreatePerson(entity.PersonInput{Name: "Admin", Email: "admin@campuscart.com", Role: entity.RoleAdmin})
	require.NoError(t, err)
	require.NoError(t, repo.SetCurrent(ctx, admin))

	current, err = repo.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.IsAdmin())

	require.NoError(t, store.Set(ctx, slots.Key(repository.SlotCurrentUser), []byte(`{"id":"user_1","role":"guest"}`)))
	current, err = repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, repo.ClearCurrent(ctx))
	assert.Empty(t, store.Keys())
}

func TestBlockedRepository(t *testing.T) {
	repo := NewBlockedRepository(newTestSlots(memory.New(), nil))
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "user_2"))
	require.NoError(t, repo.Add(ctx, "user_1"))
	require.NoError(t, repo.Add(ctx, "user_2"))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"user_2", "user_1"}, ids)

	require.NoError(t, repo.Remove(ctx, "user_2"))
	require.NoError(t, repo.Remove(ctx, "user_9"))

	blocked, err := repo.Contains(ctx, "user_2")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestActivityRepository(t *testing.T) {
	repo := NewActivityRepository(newTestSlots(memory.New(), nil))
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		entry := entity.Activity{Action: fmt.Sprintf("login %d", i), User: "Jane", Time: testNow}
		require.NoError(t, repo.Push(ctx, entry, 10))
	}

	feed, err := repo.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 10)
	assert.Equal(t, "login 12", feed[0].Action)
	assert.Equal(t, "login 3", feed[9].Action)
	assert.True(t, feed[0].Time.Equal(testNow))
}

func TestListingRepository(t *testing.T) {
	repo := NewListingRepository(newTestSlots(memory.New(), nil))
	factory := newTestFactory()
	ctx := context.Background()

	lamp, err := factory.CreateItem(entity.ItemInput{Name: "Lamp", Category: entity.CategoryHostel, Price: 300, Quantity: 1})
	require.NoError(t, err)
	book, err := factory.CreateItem(entity.ItemInput{Name: "Book", Category: entity.CategoryEducation, Price: 250, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, repo.Append(ctx, lamp))
	require.NoError(t, repo.Append(ctx, book))

	lamp.UpdateQuantity(entity.SetTo(0))
	require.NoError(t, repo.Update(ctx, lamp))

	found, err := repo.FindByID(ctx, lamp.ID)
	require.NoError(t, err)
	assert.True(t, found.IsOutOfStock)

	deleted, err := repo.Delete(ctx, lamp.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, lamp.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, book.ID, items[0].ID)

	_, err = repo.FindByID(ctx, lamp.ID)
	assert.True(t, errors.Is(err, repository.ErrItemNotFound))
}

func TestCartRepository(t *testing.T) {
	repo := NewCartRepository(newTestSlots(memory.New(), nil), func() time.Time { return testNow })
	ctx := context.Background()

	cart, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, cart)

	cart = entity.NewCart(0.18)
	require.NoError(t, cart.AddItem(&entity.Item{ID: "item_1", Name: "Book", Price: 50, Quantity: 3}, 2))
	cart.ApplyDiscountPercent(10)
	require.NoError(t, repo.Save(ctx, cart))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 2, loaded.Quantity("item_1"))
	assert.InDelta(t, 10.0, loaded.Discount(), 1e-9)
	assert.InDelta(t, 108.0, loaded.FinalTotal(), 1e-9)
}
