// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"campuscart/config"
	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/repository"
	logs "campuscart/internal/infra/log"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager     repository.TransactionManager
	factory       *entity.Factory
	clock         entity.Clock
	activityLimit int
	logger        *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	txManager repository.TransactionManager,
	factory *entity.Factory,
	clock entity.Clock,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SessionUsecase {
	limit := entity.DefaultActivityLimit
	if cfg != nil && cfg.Activity != nil && cfg.Activity.Limit > 0 {
		limit = cfg.Activity.Limit
	}

	return &sessionService{
		txManager:     txManager,
		factory:       factory,
		clock:         clock,
		activityLimit: limit,
		logger:        logger,
	}
}

// log returns a run-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return logs.LoggerOrDefault(ctx, srv.logger)
}

// Login admits candidate unless it is blocked.
func (srv *sessionService) Login(ctx context.Context, candidate *entity.Person) (*usecase.LoginResult, error) {
	if candidate == nil {
		return nil, errors.New("login candidate is nil")
	}
	srv.log(ctx).Info("Logging in", slog.String("user_id", candidate.ID), slog.String("role", candidate.Role().String()))

	var result *usecase.LoginResult

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// 1. Blocked ids never reach the session
		blocked, err := repoFactory.BlockedRepo().Contains(ctx, candidate.ID)
		if err != nil {
			return errors.Wrap(err, "failed to check blocked ids")
		}
		if blocked {
			result = &usecase.LoginResult{Status: usecase.LoginRejected, Reason: usecase.RejectReasonBlocked}

			return nil
		}

		// 2. Rehydrate so the session always holds a well-formed variant
		user, err := entity.RestorePerson(candidate.State())
		if err != nil {
			return errors.Wrap(err, "failed to restore candidate")
		}

		// 3. Session, known users and activity change together
		if err := repoFactory.SessionRepo().SetCurrent(ctx, user); err != nil {
			return errors.Wrap(err, "failed to set current user")
		}
		if _, err := repoFactory.UserRepo().AddIfAbsent(ctx, user); err != nil {
			return errors.Wrap(err, "failed to remember user")
		}
		if err := repoFactory.ActivityRepo().Push(ctx, entity.LoginActivity(user, srv.clock.Now()), srv.activityLimit); err != nil {
			return errors.Wrap(err, "failed to record login activity")
		}

		result = &usecase.LoginResult{Status: usecase.LoginAccepted, User: user}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to log in", slog.Any("error", err), slog.String("user_id", candidate.ID))

		return nil, errors.Wrap(err, "failed to log in")
	}

	if !result.Accepted() {
		srv.log(ctx).Warn("Rejected login", slog.String("user_id", candidate.ID), slog.String("reason", result.Reason))

		return result, nil
	}
	srv.log(ctx).Info("Successfully logged in", slog.String("user_id", result.User.ID))

	return result, nil
}

// SignIn resolves input to a known person, creating one when needed, and logs it in.
func (srv *sessionService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.LoginResult, error) {
	srv.log(ctx).Debug("Signing in", slog.String("email", input.Email), slog.String("role", input.Role.String()))

	var candidate *entity.Person

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		known, err := repoFactory.UserRepo().FindByEmail(ctx, input.Email, input.Role)
		if err == nil {
			candidate = known

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user")
		}

		candidate, err = srv.factory.CreatePerson(entity.PersonInput{
			Name:     input.Name,
			Email:    input.Email,
			Role:     input.Role,
			Phone:    input.Phone,
			WhatsApp: input.WhatsApp,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to sign in", slog.Any("error", err), slog.String("email", input.Email))

		return nil, errors.Wrap(err, "failed to sign in")
	}

	return srv.Login(ctx, candidate)
}

// Logout clears the current user.
func (srv *sessionService) Logout(ctx context.Context) error {
	srv.log(ctx).Info("Logging out")

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionRepo().ClearCurrent(ctx)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to log out", slog.Any("error", err))

		return errors.Wrap(err, "failed to log out")
	}

	return nil
}

// CurrentUser returns the logged-in person, or nil.
func (srv *sessionService) CurrentUser(ctx context.Context) (*entity.Person, error) {
	var user *entity.Person

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.SessionRepo().Current(ctx)

		return err
	})

	if err != nil {
		srv.log(ctx).Error("Failed to get current user", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to get current user")
	}

	return user, nil
}

// KnownUsers returns every person who has logged in.
func (srv *sessionService) KnownUsers(ctx context.Context) ([]*entity.Person, error) {
	var users []*entity.Person

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		users, err = repoFactory.UserRepo().List(ctx)

		return err
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list known users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list known users")
	}

	return users, nil
}
