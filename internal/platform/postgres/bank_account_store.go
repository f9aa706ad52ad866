package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/platform/logger"
	"github.com/lindenshop/storefront-api/internal/store"
)

// PostgresBankAccountStore implements the store.BankAccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBankAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBankAccountStore creates a new PostgreSQL implementation of the
// BankAccountStore interface. If logger is nil, a default logger will be used.
func NewPostgresBankAccountStore(db store.DBTX, logger *slog.Logger) *PostgresBankAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBankAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "bank_account_store")),
	}
}

// Ensure PostgresBankAccountStore implements store.BankAccountStore interface
var _ store.BankAccountStore = (*PostgresBankAccountStore)(nil)

// WithTx implements store.BankAccountStore.WithTx
func (s *PostgresBankAccountStore) WithTx(tx *sql.Tx) store.BankAccountStore {
	return &PostgresBankAccountStore{db: tx, logger: s.logger}
}

const bankAccountColumns = `id, user_id, bank_name, iban, swift, created_at, updated_at`

// Create implements store.BankAccountStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresBankAccountStore) Create(ctx context.Context, account *domain.BankAccount) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("bank account validation failed during create",
			slog.String("error", err.Error()),
			slog.String("bank_account_id", account.ID.String()))
		return err
	}

	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.UserID,
		account.BankName,
		account.IBAN,
		account.SWIFT,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, account.UserID)
		}
		log.Error("failed to create bank account",
			slog.String("error", err.Error()),
			slog.String("bank_account_id", account.ID.String()))
		return err
	}

	log.Info("bank account created successfully",
		slog.String("bank_account_id", account.ID.String()),
		slog.String("user_id", account.UserID.String()))
	return nil
}

// GetByID implements store.BankAccountStore.GetByID
// Returns store.ErrBankAccountNotFound if the account does not exist.
func (s *PostgresBankAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE id = $1`

	var account domain.BankAccount
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.UserID,
		&account.BankName,
		&account.IBAN,
		&account.SWIFT,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBankAccountNotFound
		}
		log.Error("failed to get bank account", slog.String("error", err.Error()))
		return nil, err
	}
	return &account, nil
}

// ListByUser implements store.BankAccountStore.ListByUser
func (s *PostgresBankAccountStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.BankAccount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list bank accounts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	accounts := []*domain.BankAccount{}
	for rows.Next() {
		var account domain.BankAccount
		err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.BankName,
			&account.IBAN,
			&account.SWIFT,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	return accounts, rows.Err()
}

// Update implements store.BankAccountStore.Update
// Returns store.ErrBankAccountNotFound if the account does not exist.
func (s *PostgresBankAccountStore) Update(ctx context.Context, account *domain.BankAccount) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE bank_accounts
		SET bank_name = $1, iban = $2, swift = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx, query, account.BankName, account.IBAN, account.SWIFT, account.UpdatedAt, account.ID)
	if err != nil {
		log.Error("failed to update bank account",
			slog.String("error", err.Error()),
			slog.String("bank_account_id", account.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrBankAccountNotFound
	}

	return nil
}

// Delete implements store.BankAccountStore.Delete
// Returns store.ErrBankAccountNotFound if the account does not exist.
func (s *PostgresBankAccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete bank account",
			slog.String("error", err.Error()),
			slog.String("bank_account_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrBankAccountNotFound
	}

	return nil
}
