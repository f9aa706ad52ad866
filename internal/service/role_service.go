package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/store"
)

// RoleParams carries a partial role update. Nil fields are left untouched.
type RoleParams struct {
	Name        *string
	Description *string
}

// RoleService manages roles and their localized descriptions. Roles are
// never deleted; user/role links are removed instead.
type RoleService interface {
	// CreateRole creates a new role. Returns store.ErrRoleNameExists if
	// the name is taken.
	CreateRole(ctx context.Context, name, description string) (*domain.Role, error)

	// GetRole retrieves a role with its localized description resolved.
	GetRole(ctx context.Context, id uuid.UUID) (*domain.Role, error)

	// ListRoles retrieves all roles, sorted by name.
	ListRoles(ctx context.Context) ([]*domain.Role, error)

	// UpdateRole applies a partial update to an existing role.
	UpdateRole(ctx context.Context, id uuid.UUID, params RoleParams) (*domain.Role, error)
}

// RoleServiceImpl implements the RoleService interface
type RoleServiceImpl struct {
	roleStore  store.RoleStore
	translator *i18n.Translator
	db         *sql.DB
	logger     *slog.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(roleStore store.RoleStore, translator *i18n.Translator, db *sql.DB, logger *slog.Logger) RoleService {
	return &RoleServiceImpl{
		roleStore:  roleStore,
		translator: translator,
		db:         db,
		logger:     logger.With("component", "role_service"),
	}
}

// CreateRole creates a new role.
func (s *RoleServiceImpl) CreateRole(ctx context.Context, name, description string) (*domain.Role, error) {
	role, err := domain.NewRole(name)
	if err != nil {
		return nil, err
	}
	role.Description = description

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.roleStore.WithTx(tx).Create(ctx, role); err != nil {
			return err
		}
		if description != "" {
			if err := s.translator.WithTx(tx).SaveRoleDescription(ctx, role); err != nil {
				return fmt.Errorf("failed to save role description: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("role created",
		"role_id", role.ID,
		"name", role.Name)

	return role, nil
}

// GetRole retrieves a role with its localized description resolved.
func (s *RoleServiceImpl) GetRole(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	role, err := s.roleStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.translator.LoadRoleDescription(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// ListRoles retrieves all roles, sorted by name.
func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.roleStore.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if err := s.translator.LoadRoleDescription(ctx, role); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

// UpdateRole applies a partial update to an existing role.
func (s *RoleServiceImpl) UpdateRole(ctx context.Context, id uuid.UUID, params RoleParams) (*domain.Role, error) {
	var role *domain.Role

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txRoles := s.roleStore.WithTx(tx)

		var err error
		role, err = txRoles.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if params.Name != nil {
			role.Name = *params.Name
		}
		if params.Description != nil {
			role.Description = *params.Description
		}
		role.UpdatedAt = time.Now().UTC()
		if err := role.Validate(); err != nil {
			return err
		}

		if err := txRoles.Update(ctx, role); err != nil {
			return err
		}
		if params.Description != nil {
			if err := s.translator.WithTx(tx).SaveRoleDescription(ctx, role); err != nil {
				return fmt.Errorf("failed to save role description: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}
