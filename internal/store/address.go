package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
)

// AddressStore defines the interface for address data persistence.
type AddressStore interface {
	// Create saves a new address.
	// Returns ErrInvalidEntity if the owning customer does not exist.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves an address by its unique ID.
	// Returns ErrAddressNotFound if the address does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error)

	// ListByCustomer retrieves all addresses owned by the customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Address, error)

	// List retrieves addresses across all customers, most recent first.
	List(ctx context.Context, limit, offset int) ([]*domain.Address, error)

	// Update modifies an existing address.
	// Returns ErrAddressNotFound if the address does not exist.
	Update(ctx context.Context, address *domain.Address) error

	// Delete removes an address.
	// Returns ErrAddressNotFound if the address does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReassignCustomer moves every address owned by fromCustomer to
	// toCustomer. Used when an anonymous customer is merged on login.
	ReassignCustomer(ctx context.Context, fromCustomer, toCustomer uuid.UUID) error

	// WithTx returns a new AddressStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AddressStore
}
