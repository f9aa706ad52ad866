package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/platform/logger"
	"github.com/lindenshop/storefront-api/internal/store"
)

// PostgresRoleStore implements the store.RoleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRoleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRoleStore creates a new PostgreSQL implementation of the
// RoleStore interface. If logger is nil, a default logger will be used.
func NewPostgresRoleStore(db store.DBTX, logger *slog.Logger) *PostgresRoleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRoleStore{
		db:     db,
		logger: logger.With(slog.String("component", "role_store")),
	}
}

// Ensure PostgresRoleStore implements store.RoleStore interface
var _ store.RoleStore = (*PostgresRoleStore)(nil)

// WithTx implements store.RoleStore.WithTx
func (s *PostgresRoleStore) WithTx(tx *sql.Tx) store.RoleStore {
	return &PostgresRoleStore{db: tx, logger: s.logger}
}

// Create implements store.RoleStore.Create
// Returns store.ErrRoleNameExists if the name is already taken.
func (s *PostgresRoleStore) Create(ctx context.Context, role *domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := role.Validate(); err != nil {
		log.Warn("role validation failed during create",
			slog.String("error", err.Error()),
			slog.String("role_id", role.ID.String()))
		return err
	}

	query := `
		INSERT INTO roles (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, role.ID, role.Name, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrRoleNameExists
		}
		log.Error("failed to create role",
			slog.String("error", err.Error()),
			slog.String("role_name", role.Name))
		return err
	}

	log.Info("role created successfully",
		slog.String("role_id", role.ID.String()),
		slog.String("role_name", role.Name))
	return nil
}

// GetByID implements store.RoleStore.GetByID
// Returns store.ErrRoleNotFound if the role does not exist.
func (s *PostgresRoleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return s.getRole(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`, id)
}

// GetByName implements store.RoleStore.GetByName
// Returns store.ErrRoleNotFound if the role does not exist.
func (s *PostgresRoleStore) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.getRole(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE name = $1`, name)
}

func (s *PostgresRoleStore) getRole(ctx context.Context, query string, arg any) (*domain.Role, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var role domain.Role
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRoleNotFound
		}
		log.Error("failed to get role", slog.String("error", err.Error()))
		return nil, err
	}
	return &role, nil
}

// List implements store.RoleStore.List
func (s *PostgresRoleStore) List(ctx context.Context) ([]*domain.Role, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		log.Error("failed to list roles", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	roles := []*domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

// Update implements store.RoleStore.Update
// Returns store.ErrRoleNotFound if the role does not exist.
func (s *PostgresRoleStore) Update(ctx context.Context, role *domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := role.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE roles SET name = $1, updated_at = $2 WHERE id = $3`,
		role.Name, role.UpdatedAt, role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrRoleNameExists
		}
		log.Error("failed to update role",
			slog.String("error", err.Error()),
			slog.String("role_id", role.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrRoleNotFound
	}

	return nil
}
