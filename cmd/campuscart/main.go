package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"campuscart/config"
	"campuscart/internal/delivery/cli"
	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	"campuscart/internal/domain/service"
	"campuscart/internal/domain/validation"
	logs "campuscart/internal/infra/log"
	"campuscart/internal/infra/metrics"
	"campuscart/internal/infra/persistence/file"
	"campuscart/internal/infra/persistence/kv"
	"campuscart/internal/infra/persistence/memory"
	"campuscart/internal/infra/persistence/redis"
	"campuscart/internal/infra/qrcode"
	"campuscart/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, ok := findCommand(os.Args[1])
	if !ok {
		printUsage()
		os.Exit(1)
	}

	run, err := cmd.parse(os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	os.Exit(execute(run))
}

// execute builds the application, runs one command and returns the exit code.
func execute(run runFunc) int {
	var (
		handler *cli.Handler
		counter *metrics.Metrics
		cfg     *config.Config
		logger  *slog.Logger
	)

	app := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		fx.Populate(&handler, &counter, &cfg, &logger),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Error("Failed to stop", slog.Any("error", err))
		}
	}()

	ctx := logs.NewRunContext(context.Background(), logger)

	code := 0
	resp, err := run(ctx, handler)
	if err != nil {
		resp, code = cli.Failure(err)
		if code == 1 {
			logger.Error("Command failed", slog.Any("error", err), slog.String("run_id", logs.RunIDFromContext(ctx)))
		}
	}

	if err := cli.Write(os.Stdout, resp); err != nil {
		logger.Error("Failed to write response", slog.Any("error", err))
	}

	if path := cfg.Metrics.Textfile; path != "" {
		if err := counter.WriteTextfile(path); err != nil {
			logger.Warn("Failed to export metrics", slog.Any("error", err))
		}
	}

	return code
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		newStore,
		newSlots,
		newClock,
		newIDGenerator,
		metrics.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			kv.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newQRCodeService,
			newFilePolicy,
			entity.NewFactory,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewModerationService,
			impl.NewCartService,
			impl.NewListingService,
			impl.NewDashboardService,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			cli.NewHandler,
		),
	)
}

// newStore opens the key-value store selected by storage.driver.
func newStore(lc fx.Lifecycle, cfg *config.Config) (repository.KVStore, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageFile:
		store, err := file.New(cfg.Storage.Path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open file store")
		}

		return store, nil
	case config.StorageRedis:
		redisCfg := cfg.Storage.Redis
		store := redis.New(redis.NewClient(redisCfg.Addr, redisCfg.Password, redisCfg.DB, redisCfg.Timeout))
		lc.Append(fx.Hook{
			OnStart: store.Ping,
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})

		return store, nil
	default:
		return nil, errors.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

func newSlots(store repository.KVStore, cfg *config.Config, logger *slog.Logger) *kv.Slots {
	return kv.NewSlots(store, cfg.Storage.Prefix, logger)
}

func newClock() entity.Clock {
	return time.Now
}

// newIDGenerator returns the configured generator. A sequence generator is
// first moved past every user and item id already in the store.
func newIDGenerator(lc fx.Lifecycle, cfg *config.Config, slots *kv.Slots) entity.IDGenerator {
	if cfg.IDs.Strategy == config.IDUUID {
		return entity.UUIDGenerator{}
	}

	gen := entity.NewSequenceGenerator()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			repos := kv.NewRepositoryFactory(slots, nil)

			people, err := repos.UserRepo().List(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to scan user ids")
			}
			for _, p := range people {
				gen.Observe(p.ID)
			}

			items, err := repos.ListingRepo().List(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to scan item ids")
			}
			for _, item := range items {
				gen.Observe(item.ID)
			}

			return nil
		},
	})

	return gen
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// newFilePolicy builds the attachment policy from the upload section.
func newFilePolicy(cfg *config.Config) (validation.FilePolicy, error) {
	policy := validation.DefaultFilePolicy()

	size, err := cfg.Upload.MaxFileSizeBytes()
	if err != nil {
		return policy, err
	}
	policy.MaxSize = size
	if len(cfg.Upload.AllowedTypes) > 0 {
		policy.AllowedTypes = cfg.Upload.AllowedTypes
	}

	return policy, nil
}
