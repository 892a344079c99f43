package impl

import (
	"context"
	"log/slog"

	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	logs "campuscart/internal/infra/log"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.DashboardUsecase {
	return &dashboardService{
		txManager: txManager,
		logger:    logger,
	}
}

// Analytics summarizes users, listings and recent logins.
func (srv *dashboardService) Analytics(ctx context.Context) (*usecase.Analytics, error) {
	logger := logs.LoggerOrDefault(ctx, srv.logger)
	logger.Debug("Computing dashboard analytics")

	var (
		people   []*entity.Person
		blocked  []string
		items    []*entity.Item
		activity []entity.Activity
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		if people, err = repoFactory.UserRepo().List(ctx); err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		if blocked, err = repoFactory.BlockedRepo().List(ctx); err != nil {
			return errors.Wrap(err, "failed to list blocked ids")
		}
		if items, err = repoFactory.ListingRepo().List(ctx); err != nil {
			return errors.Wrap(err, "failed to list listings")
		}
		if activity, err = repoFactory.ActivityRepo().Recent(ctx); err != nil {
			return errors.Wrap(err, "failed to load activity")
		}

		return nil
	})

	if err != nil {
		logger.Error("Failed to compute dashboard analytics", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to compute dashboard analytics")
	}

	analytics := &usecase.Analytics{
		Users:          countUsers(people, blocked),
		Inventory:      countInventory(items),
		Categories:     countCategories(items),
		Sellers:        sellerStats(people),
		RecentActivity: activity,
	}

	return analytics, nil
}

func countUsers(people []*entity.Person, blocked []string) usecase.UserCounts {
	counts := usecase.UserCounts{Total: len(people), Blocked: len(blocked)}
	for _, p := range people {
		switch p.Role() {
		case entity.RoleBuyer:
			counts.Buyers++
		case entity.RoleSeller:
			counts.Sellers++
		case entity.RoleAdmin:
			counts.Admins++
		}
	}

	return counts
}

// sellerStats lists every known person holding listings, in known-user order.
func sellerStats(people []*entity.Person) []usecase.SellerStats {
	stats := make([]usecase.SellerStats, 0, len(people))
	for _, p := range people {
		if p.Seller == nil {
			continue
		}
		s := p.Stats()
		stats = append(stats, usecase.SellerStats{
			ID:              p.ID,
			Name:            p.Name,
			TotalItems:      s.TotalItems,
			ActiveItems:     s.ActiveItems,
			OutOfStockItems: s.OutOfStockItems,
			TotalPosts:      s.TotalPosts,
		})
	}

	return stats
}

func countInventory(items []*entity.Item) usecase.InventoryCounts {
	counts := usecase.InventoryCounts{Total: len(items)}
	for _, item := range items {
		if item.IsAvailable() {
			counts.Active++
		}
		if item.IsOutOfStock {
			counts.OutOfStock++
		}
	}

	return counts
}

// countCategories returns one entry per category in display order. The
// percentage is of all listings, rounded to one decimal place.
func countCategories(items []*entity.Item) []usecase.CategoryCount {
	byCategory := make(map[entity.Category]int)
	for _, item := range items {
		byCategory[item.Category]++
	}

	total := decimal.NewFromInt(int64(len(items)))
	counts := make([]usecase.CategoryCount, 0, len(entity.Categories()))
	for _, category := range entity.Categories() {
		count := byCategory[category]

		var pct float64
		if !total.IsZero() {
			pct = decimal.NewFromInt(int64(count)).
				Mul(decimal.NewFromInt(100)).
				DivRound(total, 1).
				InexactFloat64()
		}

		counts = append(counts, usecase.CategoryCount{
			Category:   category,
			Count:      count,
			Percentage: pct,
		})
	}

	return counts
}
