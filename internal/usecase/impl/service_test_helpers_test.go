package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"campuscart/config"
	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	"campuscart/internal/domain/validation"
	"campuscart/internal/infra/persistence/kv"
	"campuscart/internal/infra/persistence/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(activityLimit int) *config.Config {
	cfg := &config.Config{
		Activity: &config.ActivityConfig{Limit: activityLimit},
	}
	config.ApplyDefaults(cfg)

	return cfg
}

// testEnv bundles a memory-backed store with the pieces services need.
type testEnv struct {
	store     *memory.Store
	slots     *kv.Slots
	txManager repository.TransactionManager
	ids       *entity.SequenceGenerator
	clock     entity.Clock
	factory   *entity.Factory
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := newDiscardLogger()
	store := memory.New()
	slots := kv.NewSlots(store, "", logger)
	ids := entity.NewSequenceGenerator()
	clock := entity.Clock(func() time.Time { return testNow })

	return &testEnv{
		store:     store,
		slots:     slots,
		txManager: kv.NewTransactionManager(slots, clock),
		ids:       ids,
		clock:     clock,
		factory:   entity.NewFactory(ids, clock, validation.DefaultFilePolicy()),
		logger:    logger,
	}
}

func (env *testEnv) repos() repository.RepositoryFactory {
	return kv.NewRepositoryFactory(env.slots, env.clock)
}

func (env *testEnv) person(t *testing.T, name, email string, role entity.Role) *entity.Person {
	t.Helper()

	p, err := env.factory.CreatePerson(entity.PersonInput{
		Name:     name,
		Email:    email,
		Role:     role,
		Phone:    "9876543210",
		WhatsApp: "9876543210",
	})
	require.NoError(t, err)

	return p
}

func (env *testEnv) item(t *testing.T, name string, price float64, quantity int) *entity.Item {
	t.Helper()

	item, err := env.factory.CreateItem(entity.ItemInput{
		Name:     name,
		Category: entity.CategoryEducation,
		Price:    price,
		Quantity: quantity,
	})
	require.NoError(t, err)

	return item
}

// failingTxManager is a TransactionManager whose Execute result is scripted.
type failingTxManager struct {
	mock.Mock
}

func (m *failingTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}
