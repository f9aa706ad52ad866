package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// ProfileParams carries a partial profile update. Nil fields are left
// untouched. A password change requires both Password and ConfirmPassword.
type ProfileParams struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	Fax             *string
	Company         *string
	Gender          *string
	BirthDate       *time.Time
	Password        *string
	ConfirmPassword *string
	RoleID          *uuid.UUID
}

// UserService provides profile-related operations.
type UserService interface {
	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves users matching the filter, most recent first.
	ListUsers(ctx context.Context, filter store.UserFilter) ([]*domain.User, error)

	// UpdateProfile applies a partial update to a user's profile. Role
	// changes require actorIsAdmin and return ErrRoleChangeNotAllowed
	// otherwise. Password changes require a matching confirmation.
	UpdateProfile(ctx context.Context, userID uuid.UUID, params ProfileParams, actorIsAdmin bool) (*domain.User, error)

	// ConfirmEmail marks the user's email address as confirmed.
	ConfirmEmail(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// DeleteUser deletes a user by their ID
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, db *sql.DB, logger *slog.Logger) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user by email",
				"error", err)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves users matching the filter, most recent first.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users",
			"error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateProfile applies a partial update to a user's profile.
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	params ProfileParams,
	actorIsAdmin bool,
) (*domain.User, error) {
	if params.RoleID != nil && !actorIsAdmin {
		return nil, ErrRoleChangeNotAllowed
	}

	hashed, err := s.hashedPasswordChange(params)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		var err error
		user, err = txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		applyProfileParams(user, params)
		if hashed != "" {
			user.HashedPassword = hashed
			user.Password = ""
		}
		user.UpdatedAt = time.Now().UTC()

		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		if params.RoleID != nil {
			if err := txStore.AddRole(ctx, userID, *params.RoleID); err != nil {
				return fmt.Errorf("failed to assign role: %w", err)
			}
			// Reload so the response carries the fresh role set.
			user, err = txStore.GetByID(ctx, userID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("profile update failed",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("profile updated",
		"user_id", userID,
		"password_changed", hashed != "",
		"role_changed", params.RoleID != nil)

	return user, nil
}

// hashedPasswordChange validates a requested password change and returns
// the new hash, or "" when no change was requested.
func (s *UserServiceImpl) hashedPasswordChange(params ProfileParams) (string, error) {
	if params.Password == nil || *params.Password == "" {
		return "", nil
	}
	if params.ConfirmPassword == nil || *params.Password != *params.ConfirmPassword {
		return "", ErrPasswordMismatch
	}
	if len(*params.Password) < domain.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if len(*params.Password) > domain.MaxPasswordLength {
		return "", domain.ErrPasswordTooLong
	}

	hashed, err := s.hasher.Hash(*params.Password)
	if err != nil {
		s.logger.Error("failed to hash password for profile update",
			"error", err)
		return "", fmt.Errorf("failed to update password: %w", err)
	}
	return hashed, nil
}

// ConfirmEmail marks the user's email address as confirmed.
func (s *UserServiceImpl) ConfirmEmail(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		var err error
		user, err = txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsConfirmed() {
			return nil
		}

		now := time.Now().UTC()
		user.ConfirmedAt = &now
		user.UpdatedAt = now
		return txStore.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a user by their ID
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		err := s.userStore.WithTx(tx).Delete(ctx, userID)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				s.logger.Error("failed to delete user",
					"error", err,
					"user_id", userID)
			}
			return err
		}

		s.logger.Info("user deleted",
			"user_id", userID)
		return nil
	})
}

func applyProfileParams(u *domain.User, p ProfileParams) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Fax != nil {
		u.Fax = *p.Fax
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.BirthDate != nil {
		u.BirthDate = p.BirthDate
	}
}
