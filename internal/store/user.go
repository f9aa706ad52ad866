package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
)

// UserFilter restricts the result set of UserStore.List.
// String fields are matched as case-insensitive substrings.
type UserFilter struct {
	FirstName string
	LastName  string
	Email     string
	Limit     int
	Offset    int
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user, roles included, by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user, roles included, by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves users matching the filter, most recent first.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)

	// Update modifies an existing user's details. The caller must provide a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddRole assigns the role to the user. Adding a role the user already
	// has is a no-op.
	AddRole(ctx context.Context, userID, roleID uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction, so multiple operations can be executed atomically.
	WithTx(tx *sql.Tx) UserStore
}
