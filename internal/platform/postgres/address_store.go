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

// PostgresAddressStore implements the store.AddressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAddressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAddressStore creates a new PostgreSQL implementation of the
// AddressStore interface. If logger is nil, a default logger will be used.
func NewPostgresAddressStore(db store.DBTX, logger *slog.Logger) *PostgresAddressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAddressStore{
		db:     db,
		logger: logger.With(slog.String("component", "address_store")),
	}
}

// Ensure PostgresAddressStore implements store.AddressStore interface
var _ store.AddressStore = (*PostgresAddressStore)(nil)

// WithTx implements store.AddressStore.WithTx
func (s *PostgresAddressStore) WithTx(tx *sql.Tx) store.AddressStore {
	return &PostgresAddressStore{db: tx, logger: s.logger}
}

const addressColumns = `id, customer_id, country_id, city, street, apartment, zip_code,
		first_name, last_name, company, gender, phone, type, created_at, updated_at`

// Create implements store.AddressStore.Create
// Returns store.ErrInvalidEntity if the owning customer does not exist.
func (s *PostgresAddressStore) Create(ctx context.Context, address *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := address.Validate(); err != nil {
		log.Warn("address validation failed during create",
			slog.String("error", err.Error()),
			slog.String("address_id", address.ID.String()))
		return err
	}

	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		address.ID,
		address.CustomerID,
		address.CountryID,
		address.City,
		address.Street,
		address.Apartment,
		address.ZipCode,
		address.FirstName,
		address.LastName,
		address.Company,
		address.Gender,
		address.Phone,
		address.Type,
		address.CreatedAt,
		address.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer %s not found",
				store.ErrInvalidEntity, address.CustomerID)
		}
		log.Error("failed to create address",
			slog.String("error", err.Error()),
			slog.String("address_id", address.ID.String()))
		return err
	}

	log.Info("address created successfully",
		slog.String("address_id", address.ID.String()),
		slog.String("customer_id", address.CustomerID.String()))
	return nil
}

// GetByID implements store.AddressStore.GetByID
// Returns store.ErrAddressNotFound if the address does not exist.
func (s *PostgresAddressStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	var address domain.Address
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&address.ID,
		&address.CustomerID,
		&address.CountryID,
		&address.City,
		&address.Street,
		&address.Apartment,
		&address.ZipCode,
		&address.FirstName,
		&address.LastName,
		&address.Company,
		&address.Gender,
		&address.Phone,
		&address.Type,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAddressNotFound
		}
		log.Error("failed to get address", slog.String("error", err.Error()))
		return nil, err
	}
	return &address, nil
}

// ListByCustomer implements store.AddressStore.ListByCustomer
func (s *PostgresAddressStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`
	return s.queryAddresses(ctx, query, customerID)
}

// List implements store.AddressStore.List
func (s *PostgresAddressStore) List(ctx context.Context, limit, offset int) ([]*domain.Address, error) {
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return s.queryAddresses(ctx, query, limit, offset)
}

func (s *PostgresAddressStore) queryAddresses(ctx context.Context, query string, args ...any) ([]*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query addresses", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	addresses := []*domain.Address{}
	for rows.Next() {
		var address domain.Address
		err := rows.Scan(
			&address.ID,
			&address.CustomerID,
			&address.CountryID,
			&address.City,
			&address.Street,
			&address.Apartment,
			&address.ZipCode,
			&address.FirstName,
			&address.LastName,
			&address.Company,
			&address.Gender,
			&address.Phone,
			&address.Type,
			&address.CreatedAt,
			&address.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, &address)
	}
	return addresses, rows.Err()
}

// Update implements store.AddressStore.Update
// Returns store.ErrAddressNotFound if the address does not exist.
func (s *PostgresAddressStore) Update(ctx context.Context, address *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := address.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE addresses
		SET country_id = $1, city = $2, street = $3, apartment = $4, zip_code = $5,
			first_name = $6, last_name = $7, company = $8, gender = $9, phone = $10,
			type = $11, updated_at = $12
		WHERE id = $13
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		address.CountryID,
		address.City,
		address.Street,
		address.Apartment,
		address.ZipCode,
		address.FirstName,
		address.LastName,
		address.Company,
		address.Gender,
		address.Phone,
		address.Type,
		address.UpdatedAt,
		address.ID,
	)
	if err != nil {
		log.Error("failed to update address",
			slog.String("error", err.Error()),
			slog.String("address_id", address.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrAddressNotFound
	}

	return nil
}

// Delete implements store.AddressStore.Delete
// Returns store.ErrAddressNotFound if the address does not exist.
func (s *PostgresAddressStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete address",
			slog.String("error", err.Error()),
			slog.String("address_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrAddressNotFound
	}

	return nil
}

// ReassignCustomer implements store.AddressStore.ReassignCustomer
// Moves all addresses from one customer to another during a merge.
func (s *PostgresAddressStore) ReassignCustomer(ctx context.Context, fromCustomer, toCustomer uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE addresses SET customer_id = $1 WHERE customer_id = $2`,
		toCustomer, fromCustomer)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer %s not found", store.ErrInvalidEntity, toCustomer)
		}
		log.Error("failed to reassign addresses",
			slog.String("error", err.Error()),
			slog.String("from_customer", fromCustomer.String()),
			slog.String("to_customer", toCustomer.String()))
		return err
	}

	moved, err := result.RowsAffected()
	if err != nil {
		return err
	}

	log.Debug("addresses reassigned",
		slog.Int64("count", moved),
		slog.String("from_customer", fromCustomer.String()),
		slog.String("to_customer", toCustomer.String()))
	return nil
}
