// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"campuscart/internal/domain/entity"
	domainerrors "campuscart/internal/domain/errors"
)

// LoginStatus tells whether a login attempt was accepted.
type LoginStatus string

const (
	LoginAccepted LoginStatus = "accepted"
	LoginRejected LoginStatus = "rejected"
)

// RejectReasonBlocked is the reason given when a blocked person tries to log in.
const RejectReasonBlocked = "blocked"

// LoginResult is the outcome of a login attempt. User is set only when
// the attempt was accepted; Reason only when it was rejected.
type LoginResult struct {
	Status LoginStatus
	User   *entity.Person
	Reason string
}

// Accepted reports whether the login went through.
func (r *LoginResult) Accepted() bool {
	return r.Status == LoginAccepted
}

// Err returns ErrBlockedLogin for a rejected login, nil otherwise.
func (r *LoginResult) Err() error {
	if r.Accepted() {
		return nil
	}

	return domainerrors.ErrBlockedLogin.WithDetails(r.Reason)
}

// SignInInput identifies a person at the login form. An existing known person
// with the same email and role is reused, otherwise a new one is created.
type SignInInput struct {
	Name     string
	Email    string
	Role     entity.Role
	Phone    string
	WhatsApp string
}

// SessionUsecase defines the interface for session management operations.
type SessionUsecase interface {
	// Login admits candidate unless its id is blocked. An accepted login
	// becomes the current user, is remembered in the known users and is
	// recorded in the activity feed. A rejected login changes nothing.
	Login(ctx context.Context, candidate *entity.Person) (*LoginResult, error)

	// SignIn resolves input to a known or new person and logs it in.
	SignIn(ctx context.Context, input *SignInInput) (*LoginResult, error)

	// Logout clears the current user.
	Logout(ctx context.Context) error

	// CurrentUser returns the logged-in person, or nil.
	CurrentUser(ctx context.Context) (*entity.Person, error)

	// KnownUsers returns every person who has logged in, in first-login order.
	KnownUsers(ctx context.Context) ([]*entity.Person, error)
}
