package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
)

// RoleStore defines the interface for role data persistence.
// Roles are never deleted, so no Delete is exposed.
type RoleStore interface {
	// Create saves a new role.
	// Returns ErrRoleNameExists if the name is already taken.
	Create(ctx context.Context, role *domain.Role) error

	// GetByID retrieves a role by its unique ID.
	// Returns ErrRoleNotFound if the role does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)

	// GetByName retrieves a role by its unique name.
	// Returns ErrRoleNotFound if the role does not exist.
	GetByName(ctx context.Context, name string) (*domain.Role, error)

	// List retrieves all roles ordered by name.
	List(ctx context.Context) ([]*domain.Role, error)

	// Update modifies an existing role.
	// Returns ErrRoleNotFound if the role does not exist.
	Update(ctx context.Context, role *domain.Role) error

	// WithTx returns a new RoleStore bound to the provided transaction.
	WithTx(tx *sql.Tx) RoleStore
}
