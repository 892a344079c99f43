package impl

import (
	"context"
	"log/slog"

	"campuscart/internal/domain/entity"
	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/repository"
	logs "campuscart/internal/infra/log"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
)

// moderationService implements the ModerationUsecase interface.
type moderationService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewModerationService is the constructor for moderationService.
func NewModerationService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ModerationUsecase {
	return &moderationService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a run-scoped logger if available, otherwise falls back to the service's logger.
func (srv *moderationService) log(ctx context.Context) *slog.Logger {
	return logs.LoggerOrDefault(ctx, srv.logger)
}

// BlockUser adds id to the blocked set.
func (srv *moderationService) BlockUser(ctx context.Context, id string) error {
	srv.log(ctx).Info("Blocking user", slog.String("user_id", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.BlockedRepo().Add(ctx, id)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to block user", slog.Any("error", err), slog.String("user_id", id))

		return errors.Wrap(err, "failed to block user")
	}

	return nil
}

// UnblockUser removes id from the blocked set.
func (srv *moderationService) UnblockUser(ctx context.Context, id string) error {
	srv.log(ctx).Info("Unblocking user", slog.String("user_id", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.BlockedRepo().Remove(ctx, id)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to unblock user", slog.Any("error", err), slog.String("user_id", id))

		return errors.Wrap(err, "failed to unblock user")
	}

	return nil
}

// BlockedIDs returns the blocked set.
func (srv *moderationService) BlockedIDs(ctx context.Context) ([]string, error) {
	var ids []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		ids, err = repoFactory.BlockedRepo().List(ctx)

		return err
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list blocked ids", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list blocked ids")
	}

	return ids, nil
}

// IsBlocked reports whether id is blocked.
func (srv *moderationService) IsBlocked(ctx context.Context, id string) (bool, error) {
	var blocked bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		blocked, err = repoFactory.BlockedRepo().Contains(ctx, id)

		return err
	})

	if err != nil {
		return false, errors.Wrap(err, "failed to check blocked ids")
	}

	return blocked, nil
}

// BlockPerson blocks targetID on behalf of actor.
func (srv *moderationService) BlockPerson(ctx context.Context, actor *entity.Person, targetID, reason string) error {
	if err := checkModerator(actor, targetID); err != nil {
		return err
	}
	srv.log(ctx).Info("Blocking person", slog.String("admin_id", actor.ID), slog.String("user_id", targetID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.BlockedRepo().Add(ctx, targetID); err != nil {
			return errors.Wrap(err, "failed to add blocked id")
		}

		return updateKnownUser(ctx, repoFactory.UserRepo(), targetID, func(p *entity.Person) error {
			p.Block(reason)

			return nil
		})
	})

	if err != nil {
		srv.log(ctx).Error("Failed to block person", slog.Any("error", err), slog.String("user_id", targetID))

		return errors.Wrap(err, "failed to block person")
	}
	srv.log(ctx).Info("Successfully blocked person", slog.String("user_id", targetID))

	return nil
}

// UnblockPerson lifts a block on behalf of actor.
func (srv *moderationService) UnblockPerson(ctx context.Context, actor *entity.Person, targetID string) error {
	if err := checkModerator(actor, targetID); err != nil {
		return err
	}
	srv.log(ctx).Info("Unblocking person", slog.String("admin_id", actor.ID), slog.String("user_id", targetID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.BlockedRepo().Remove(ctx, targetID); err != nil {
			return errors.Wrap(err, "failed to remove blocked id")
		}

		return updateKnownUser(ctx, repoFactory.UserRepo(), targetID, func(p *entity.Person) error {
			p.Unblock()

			return nil
		})
	})

	if err != nil {
		srv.log(ctx).Error("Failed to unblock person", slog.Any("error", err), slog.String("user_id", targetID))

		return errors.Wrap(err, "failed to unblock person")
	}

	return nil
}

// DeleteListing removes itemID from the listings and from its seller's record.
func (srv *moderationService) DeleteListing(ctx context.Context, actor *entity.Person, itemID string) error {
	if actor == nil || !actor.CanModerate() {
		return errors.Wrap(domainerrors.ErrForbidden, "only admins can delete listings")
	}
	srv.log(ctx).Info("Deleting listing", slog.String("admin_id", actor.ID), slog.String("item_id", itemID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.ListingRepo()

		item, err := listingRepo.FindByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "listing not found")
			}

			return errors.Wrap(err, "failed to find listing")
		}

		if _, err := listingRepo.Delete(ctx, itemID); err != nil {
			return errors.Wrap(err, "failed to delete listing")
		}

		return updateKnownUser(ctx, repoFactory.UserRepo(), item.SellerID, func(p *entity.Person) error {
			p.RemoveListing(itemID)

			return nil
		})
	})

	if err != nil {
		srv.log(ctx).Error("Failed to delete listing", slog.Any("error", err), slog.String("item_id", itemID))

		return errors.Wrap(err, "failed to delete listing")
	}
	srv.log(ctx).Info("Successfully deleted listing", slog.String("item_id", itemID))

	return nil
}

func checkModerator(actor *entity.Person, targetID string) error {
	if actor == nil || !actor.CanModerate() {
		return errors.Wrap(domainerrors.ErrForbidden, "only admins can moderate users")
	}
	if actor.ID == targetID {
		return errors.Wrap(domainerrors.ErrForbidden, "admins cannot moderate themselves")
	}

	return nil
}

// updateKnownUser applies change to the known user with id. People who never
// logged in have no record, which is not an error.
func updateKnownUser(ctx context.Context, userRepo repository.UserRepository, id string, change func(*entity.Person) error) error {
	person, err := userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find user")
	}

	if err := change(person); err != nil {
		return err
	}

	if err := userRepo.Update(ctx, person); err != nil {
		return errors.Wrap(err, "failed to update user")
	}

	return nil
}
