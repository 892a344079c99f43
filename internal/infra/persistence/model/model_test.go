package model

import (
	"encoding/json"
	"testing"
	"time"

	"campuscart/internal/domain/entity"
	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/validation"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestFactory() *entity.Factory {
	return entity.NewFactory(entity.NewSequenceGenerator(), func() time.Time { return testNow }, validation.DefaultFilePolicy())
}

func TestPersonRecord_SellerKeepsListings(t *testing.T) {
	factory := newTestFactory()
	seller, err := factory.CreatePerson(entity.PersonInput{
		Name:     "John Doe",
		Email:    "john@campus.edu",
		Role:     entity.RoleSeller,
		Phone:    "9876543211",
		WhatsApp: "+919876543211",
	})
	require.NoError(t, err)
	item, err := factory.CreateItem(entity.ItemInput{
		Name:     "Study Lamp",
		Category: entity.CategoryHostel,
		Price:    300,
		Quantity: 1,
		File:     &entity.Attachment{Name: "manual.pdf", MIMEType: "application/pdf", Size: 2048},
	})
	require.NoError(t, err)
	require.NoError(t, seller.AddListing(item))
	seller.AddDiscussionPost(entity.PostRef{ID: "post_1", Title: "Lamp for sale"})
	seller.Block("spam")

	data, err := json.Marshal(FromPerson(seller))
	require.NoError(t, err)

	var rec PersonRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	restored, err := rec.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, seller.ID, restored.ID)
	assert.True(t, restored.IsSeller())
	assert.True(t, restored.CreatedAt.Equal(seller.CreatedAt))
	assert.Equal(t, "spam", *restored.BlockReason)
	assert.Equal(t, seller.DiscussionPosts, restored.DiscussionPosts)
	require.Len(t, restored.Listings(), 1)

	listing := restored.Listings()[0]
	assert.Equal(t, item.ID, listing.ID)
	assert.Equal(t, restored.ID, listing.SellerID)
	require.NotNil(t, listing.File)
	assert.Equal(t, "application/pdf", listing.File.MIMEType)
}

func TestPersonRecord_AdminKeepsListings(t *testing.T) {
	factory := newTestFactory()
	admin, err := factory.CreatePerson(entity.PersonInput{Name: "Admin", Email: "admin@campus.edu", Role: entity.RoleAdmin})
	require.NoError(t, err)
	item, err := factory.CreateItem(entity.ItemInput{Name: "Projector", Category: entity.CategoryElectronics, Price: 5000, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, admin.AddListing(item))

	restored, err := FromPerson(admin).ToDomain()
	require.NoError(t, err)

	assert.True(t, restored.IsAdmin())
	require.Len(t, restored.Listings(), 1)
	assert.Equal(t, admin.ID, restored.Listings()[0].SellerID)
}

func TestPersonRecord_BuyerHasNoItems(t *testing.T) {
	buyer, err := newTestFactory().CreatePerson(entity.PersonInput{Name: "Jane", Email: "jane@campus.edu", Role: entity.RoleBuyer})
	require.NoError(t, err)

	data, err := json.Marshal(FromPerson(buyer))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"items"`)
}

func TestPersonRecord_RoleIsRequired(t *testing.T) {
	for _, role := range []string{"", "guest"} {
		t.Run("role "+role, func(t *testing.T) {
			rec := PersonRecord{ID: "user_1", Name: "X", Email: "x@campus.edu", Role: role}

			_, err := rec.ToDomain()
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestItemRecord_RecomputesStock(t *testing.T) {
	rec := ItemRecord{ID: "item_1", Name: "Kettle", Category: "Hostel", Price: 800, Quantity: 0, IsOutOfStock: false}

	item, err := rec.ToDomain()
	require.NoError(t, err)
	assert.True(t, item.IsOutOfStock)

	assert.Equal(t, []string{}, FromItem(item).Images)
}

func TestCartRecord(t *testing.T) {
	cart := entity.NewCart(0.18)
	require.NoError(t, cart.AddItem(&entity.Item{ID: "item_1", Name: "Book", Price: 50, Quantity: 3}, 2))
	cart.ApplyDiscountPercent(10)

	rec := FromCart(cart, testNow)
	assert.Equal(t, testNow.UnixMilli(), rec.Timestamp)
	assert.InDelta(t, 108.0, rec.FinalTotal, 1e-9)

	t.Run("totals are recomputed", func(t *testing.T) {
		rec := rec
		rec.Subtotal = 1
		rec.FinalTotal = 1

		restored := rec.ToDomain()
		assert.InDelta(t, 100.0, restored.Subtotal(), 1e-9)
		assert.InDelta(t, 108.0, restored.FinalTotal(), 1e-9)
	})

	t.Run("missing tax rate uses default", func(t *testing.T) {
		rec := rec
		rec.TaxRate = nil

		assert.InDelta(t, 18.0, rec.ToDomain().Tax(), 1e-9)
	})

	t.Run("zero tax rate survives a round trip", func(t *testing.T) {
		taxFree := entity.NewCart(0)
		require.NoError(t, taxFree.AddItem(&entity.Item{ID: "item_1", Name: "Book", Price: 50, Quantity: 3}, 2))

		data, err := json.Marshal(FromCart(taxFree, testNow))
		require.NoError(t, err)

		var stored CartRecord
		require.NoError(t, json.Unmarshal(data, &stored))
		restored := stored.ToDomain()

		assert.Zero(t, restored.TaxRate())
		assert.Zero(t, restored.Tax())
		assert.InDelta(t, 100.0, restored.FinalTotal(), 1e-9)
	})
}

func TestFromOrder(t *testing.T) {
	cart := entity.NewCart(0.18)
	require.NoError(t, cart.AddItem(&entity.Item{ID: "item_1", Name: "Book", Price: 50, Quantity: 3}, 2))
	order, err := cart.Checkout("order_1", testNow)
	require.NoError(t, err)

	rec := FromOrder(order)

	assert.Equal(t, "order_1", rec.ID)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, 2, rec.Items[0].Quantity)
	assert.Equal(t, "₹118.00", rec.Summary.FormattedFinalTotal)
}

func TestActivityRecord(t *testing.T) {
	a := entity.Activity{Action: "Jane logged in as buyer", User: "Jane", Time: testNow}

	assert.Equal(t, a, FromActivity(a).ToDomain())
}
