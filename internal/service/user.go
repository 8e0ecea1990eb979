package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/repository"
)

// UserService manages accounts and roles.
type UserService struct {
	store  UserStore
	logger *zerolog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(store UserStore, logger *zerolog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

func userNotFound() *errs.HTTPError {
	code := errs.CodeUserNotFound
	return errs.NewNotFoundError("User not found", true, &code)
}

// Upsert stores an account on first sight of an email and is a no-op on
// every later sight. It reports whether a new account was created; repeat
// calls return the existing account unchanged.
func (s *UserService) Upsert(ctx context.Context, user *model.User) (*model.User, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	existing, err := s.store.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	if _, err := s.store.Create(ctx, user); err != nil {
		// A concurrent insert of the same email can land between the lookup
		// and the create; resolve it by re-reading.
		existing, lookupErr := s.store.GetByEmail(ctx, user.Email)
		if lookupErr == nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

// GetByEmail returns the account owning an email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, err
	}
	return user, nil
}

// List returns all accounts, for organizer views.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.store.List(ctx)
}

// Promote grants an account the organizer role. Promoting an organizer
// again succeeds without effect.
func (s *UserService) Promote(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.store.SetRole(ctx, id, model.RoleOrganizer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound()
		}
		return err
	}
	return nil
}

// IsOrganizer reports whether the email belongs to an organizer account.
func (s *UserService) IsOrganizer(ctx context.Context, email string) (bool, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user.Role == model.RoleOrganizer, nil
}
