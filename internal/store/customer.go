package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
)

// CustomerStore defines the interface for customer data persistence.
type CustomerStore interface {
	// Create saves a new customer. For customers linked to a user,
	// returns ErrCustomerExists if the user already has one.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by its unique ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetByUserID retrieves the customer linked to the given user.
	// Returns ErrCustomerNotFound if the user has no customer.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error)

	// List retrieves customers, most recent first.
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)

	// Update modifies an existing customer.
	// Returns ErrCustomerNotFound if the customer does not exist.
	Update(ctx context.Context, customer *domain.Customer) error

	// Delete removes a customer. Dependent addresses and translations are
	// removed by the schema's cascade rules.
	// Returns ErrCustomerNotFound if the customer does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CustomerStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CustomerStore
}
