package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
)

// BankAccountStore defines the interface for bank account persistence.
type BankAccountStore interface {
	// Create saves a new bank account.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, account *domain.BankAccount) error

	// GetByID retrieves a bank account by its unique ID.
	// Returns ErrBankAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error)

	// ListByUser retrieves all bank accounts owned by the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.BankAccount, error)

	// Update modifies an existing bank account.
	// Returns ErrBankAccountNotFound if the account does not exist.
	Update(ctx context.Context, account *domain.BankAccount) error

	// Delete removes a bank account.
	// Returns ErrBankAccountNotFound if the account does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new BankAccountStore bound to the provided transaction.
	WithTx(tx *sql.Tx) BankAccountStore
}

// SocialConnectionStore exposes the read side of social login connections.
// Rows are written by the external OAuth callback.
type SocialConnectionStore interface {
	// ListByUser retrieves the user's social connections, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SocialConnection, error)
}
