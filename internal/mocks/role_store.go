package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/store"
)

// MockRoleStore implements store.RoleStore for testing
type MockRoleStore struct {
	CreateFn    func(ctx context.Context, role *domain.Role) error
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetByNameFn func(ctx context.Context, name string) (*domain.Role, error)
	ListFn      func(ctx context.Context) ([]*domain.Role, error)
	UpdateFn    func(ctx context.Context, role *domain.Role) error

	Role  *domain.Role
	Roles []*domain.Role
	Err   error
}

var _ store.RoleStore = (*MockRoleStore)(nil)

func (m *MockRoleStore) Create(ctx context.Context, role *domain.Role) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, role)
	}
	return m.Err
}

func (m *MockRoleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Role == nil {
		return nil, store.ErrRoleNotFound
	}
	return m.Role, nil
}

func (m *MockRoleStore) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Role == nil {
		return nil, store.ErrRoleNotFound
	}
	return m.Role, nil
}

func (m *MockRoleStore) List(ctx context.Context) ([]*domain.Role, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Roles, m.Err
}

func (m *MockRoleStore) Update(ctx context.Context, role *domain.Role) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, role)
	}
	return m.Err
}

func (m *MockRoleStore) WithTx(tx *sql.Tx) store.RoleStore {
	return m
}
