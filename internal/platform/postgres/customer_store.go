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

// PostgresCustomerStore implements the store.CustomerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCustomerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCustomerStore creates a new PostgreSQL implementation of the
// CustomerStore interface. If logger is nil, a default logger will be used.
func NewPostgresCustomerStore(db store.DBTX, logger *slog.Logger) *PostgresCustomerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCustomerStore{
		db:     db,
		logger: logger.With(slog.String("component", "customer_store")),
	}
}

// Ensure PostgresCustomerStore implements store.CustomerStore interface
var _ store.CustomerStore = (*PostgresCustomerStore)(nil)

// WithTx implements store.CustomerStore.WithTx
func (s *PostgresCustomerStore) WithTx(tx *sql.Tx) store.CustomerStore {
	return &PostgresCustomerStore{db: tx, logger: s.logger}
}

const customerColumns = `id, user_id, email, first_name, last_name, phone, fax, company,
		gender, birth_date, direct_debit, swift, account_number, blz,
		billing_address_id, delivery_address_id, created_at, updated_at`

// Create implements store.CustomerStore.Create
// Returns store.ErrCustomerExists if the user already has a customer and
// store.ErrInvalidEntity if the referenced user does not exist.
func (s *PostgresCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.UserID,
		customer.Email,
		customer.FirstName,
		customer.LastName,
		customer.Phone,
		customer.Fax,
		customer.Company,
		customer.Gender,
		customer.BirthDate,
		customer.DirectDebit,
		customer.Swift,
		customer.AccountNumber,
		customer.BLZ,
		customer.BillingAddressID,
		customer.DeliveryAddressID,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		// The partial unique index on user_id enforces "one customer per user".
		if isUniqueViolation(err) {
			return store.ErrCustomerExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %v not found", store.ErrInvalidEntity, customer.UserID)
		}
		log.Error("failed to create customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	log.Info("customer created successfully",
		slog.String("customer_id", customer.ID.String()),
		slog.Bool("anonymous", customer.IsAnonymous()))
	return nil
}

// GetByID implements store.CustomerStore.GetByID
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return s.getCustomer(ctx, query, id)
}

// GetByUserID implements store.CustomerStore.GetByUserID
// Returns store.ErrCustomerNotFound if the user has no customer.
func (s *PostgresCustomerStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1`
	return s.getCustomer(ctx, query, userID)
}

func (s *PostgresCustomerStore) getCustomer(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var customer domain.Customer
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&customer.ID,
		&customer.UserID,
		&customer.Email,
		&customer.FirstName,
		&customer.LastName,
		&customer.Phone,
		&customer.Fax,
		&customer.Company,
		&customer.Gender,
		&customer.BirthDate,
		&customer.DirectDebit,
		&customer.Swift,
		&customer.AccountNumber,
		&customer.BLZ,
		&customer.BillingAddressID,
		&customer.DeliveryAddressID,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer", slog.String("error", err.Error()))
		return nil, err
	}
	return &customer, nil
}

// List implements store.CustomerStore.List
func (s *PostgresCustomerStore) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list customers", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	customers := []*domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.UserID,
			&customer.Email,
			&customer.FirstName,
			&customer.LastName,
			&customer.Phone,
			&customer.Fax,
			&customer.Company,
			&customer.Gender,
			&customer.BirthDate,
			&customer.DirectDebit,
			&customer.Swift,
			&customer.AccountNumber,
			&customer.BLZ,
			&customer.BillingAddressID,
			&customer.DeliveryAddressID,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}
	return customers, rows.Err()
}

// Update implements store.CustomerStore.Update
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) Update(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during update",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	query := `
		UPDATE customers
		SET user_id = $1, email = $2, first_name = $3, last_name = $4, phone = $5,
			fax = $6, company = $7, gender = $8, birth_date = $9, direct_debit = $10,
			swift = $11, account_number = $12, blz = $13,
			billing_address_id = $14, delivery_address_id = $15, updated_at = $16
		WHERE id = $17
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		customer.UserID,
		customer.Email,
		customer.FirstName,
		customer.LastName,
		customer.Phone,
		customer.Fax,
		customer.Company,
		customer.Gender,
		customer.BirthDate,
		customer.DirectDebit,
		customer.Swift,
		customer.AccountNumber,
		customer.BLZ,
		customer.BillingAddressID,
		customer.DeliveryAddressID,
		customer.UpdatedAt,
		customer.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrCustomerExists
		}
		log.Error("failed to update customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrCustomerNotFound
	}

	log.Info("customer updated successfully",
		slog.String("customer_id", customer.ID.String()))
	return nil
}

// Delete implements store.CustomerStore.Delete
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrCustomerNotFound
	}

	log.Info("customer deleted", slog.String("customer_id", id.String()))
	return nil
}
