package impl

import (
	"context"
	"testing"

	"campuscart/internal/domain/entity"
	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errStoreUnavailable = errors.New("store unavailable")

func newFailingTxManager() *failingTxManager {
	txManager := &failingTxManager{}
	txManager.On("Execute", mock.Anything, mock.Anything).Return(errStoreUnavailable)

	return txManager
}

func TestSessionService_SignIn_TransactionError(t *testing.T) {
	env := newTestEnv(t)
	txManager := newFailingTxManager()
	service := NewSessionService(txManager, env.factory, env.clock, newTestConfig(10), env.logger)

	result, err := service.SignIn(context.Background(), &usecase.SignInInput{
		Name:  "Alice",
		Email: "alice@campus.edu",
		Role:  entity.RoleBuyer,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, errStoreUnavailable)
	assert.Contains(t, err.Error(), "failed to sign in")
	txManager.AssertNumberOfCalls(t, "Execute", 1)
}

func TestSessionService_ReadsAndLogout_TransactionError(t *testing.T) {
	env := newTestEnv(t)
	txManager := newFailingTxManager()
	service := NewSessionService(txManager, env.factory, env.clock, newTestConfig(10), env.logger)
	ctx := context.Background()

	err := service.Logout(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to log out")

	current, err := service.CurrentUser(ctx)
	require.Error(t, err)
	assert.Nil(t, current)
	assert.ErrorIs(t, err, errStoreUnavailable)

	known, err := service.KnownUsers(ctx)
	require.Error(t, err)
	assert.Nil(t, known)
	assert.Contains(t, err.Error(), "failed to list known users")

	txManager.AssertNumberOfCalls(t, "Execute", 3)
}

func TestCartService_TransactionError(t *testing.T) {
	env := newTestEnv(t)
	txManager := newFailingTxManager()
	service := NewCartService(txManager, env.ids, env.clock, newTestConfig(10), env.logger)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		message string
	}{
		{
			name: "add item",
			call: func() error {
				_, err := service.AddItem(ctx, env.item(t, "Notebook", 50, 3), 1)

				return err
			},
			message: "failed to add item to cart",
		},
		{
			name: "summary",
			call: func() error {
				_, err := service.Summary(ctx)

				return err
			},
			message: "failed to summarize cart",
		},
		{
			name: "apply discount",
			call: func() error {
				_, err := service.ApplyDiscountPercent(ctx, 10)

				return err
			},
			message: "failed to apply discount",
		},
		{
			name:    "clear",
			call:    func() error { return service.Clear(ctx) },
			message: "failed to clear cart",
		},
		{
			name: "checkout",
			call: func() error {
				_, err := service.Checkout(ctx)

				return err
			},
			message: "failed to check out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			require.Error(t, err)
			assert.ErrorIs(t, err, errStoreUnavailable)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
	txManager.AssertExpectations(t)
}

func TestCartService_Checkout_FailedCommitDrawsNoOrder(t *testing.T) {
	env := newTestEnv(t)
	txManager := newFailingTxManager()
	service := NewCartService(txManager, env.ids, env.clock, newTestConfig(10), env.logger)

	order, err := service.Checkout(context.Background())

	require.Error(t, err)
	assert.Nil(t, order)
	assert.Equal(t, "order_1", env.ids.Next(entity.OrderIDPrefix))
}

func TestModerationService_TransactionError(t *testing.T) {
	env := newTestEnv(t)
	txManager := newFailingTxManager()
	service := NewModerationService(txManager, env.logger)
	admin := env.person(t, "Admin", "admin@campus.edu", entity.RoleAdmin)
	ctx := context.Background()

	err := service.BlockUser(ctx, "user_9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to block user")

	err = service.BlockPerson(ctx, admin, "user_9", "spam")
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreUnavailable)
	assert.Contains(t, err.Error(), "failed to block person")

	blocked, err := service.IsBlocked(ctx, "user_9")
	require.Error(t, err)
	assert.False(t, blocked)

	txManager.AssertNumberOfCalls(t, "Execute", 3)
}

func TestModerationService_ForbiddenBeforeTransaction(t *testing.T) {
	env := newTestEnv(t)
	txManager := &failingTxManager{}
	service := NewModerationService(txManager, env.logger)
	buyer := env.person(t, "Bob", "bob@campus.edu", entity.RoleBuyer)
	ctx := context.Background()

	err := service.BlockPerson(ctx, buyer, "user_9", "spam")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	err = service.DeleteListing(ctx, nil, "item_1")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestListingService_Browse_TransactionError(t *testing.T) {
	env := newTestEnv(t)
	txManager := newFailingTxManager()
	service := NewListingService(txManager, env.factory, nil, env.logger)

	items, err := service.Browse(context.Background(), usecase.BrowseFilter{})

	require.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "failed to browse listings")
	txManager.AssertExpectations(t)
}

func TestDashboardService_Analytics_TransactionError(t *testing.T) {
	env := newTestEnv(t)
	txManager := newFailingTxManager()
	service := NewDashboardService(txManager, env.logger)

	analytics, err := service.Analytics(context.Background())

	require.Error(t, err)
	assert.Nil(t, analytics)
	assert.ErrorIs(t, err, errStoreUnavailable)
	txManager.AssertExpectations(t)
}
