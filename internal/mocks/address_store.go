package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/store"
)

// MockAddressStore implements store.AddressStore for testing
type MockAddressStore struct {
	CreateFn           func(ctx context.Context, address *domain.Address) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	ListByCustomerFn   func(ctx context.Context, customerID uuid.UUID) ([]*domain.Address, error)
	ListFn             func(ctx context.Context, limit, offset int) ([]*domain.Address, error)
	UpdateFn           func(ctx context.Context, address *domain.Address) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error
	ReassignCustomerFn func(ctx context.Context, fromCustomer, toCustomer uuid.UUID) error

	Address   *domain.Address
	Addresses []*domain.Address
	Err       error
}

var _ store.AddressStore = (*MockAddressStore)(nil)

func (m *MockAddressStore) Create(ctx context.Context, address *domain.Address) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, address)
	}
	return m.Err
}

func (m *MockAddressStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Address == nil {
		return nil, store.ErrAddressNotFound
	}
	return m.Address, nil
}

func (m *MockAddressStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Address, error) {
	if m.ListByCustomerFn != nil {
		return m.ListByCustomerFn(ctx, customerID)
	}
	return m.Addresses, m.Err
}

func (m *MockAddressStore) List(ctx context.Context, limit, offset int) ([]*domain.Address, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return m.Addresses, m.Err
}

func (m *MockAddressStore) Update(ctx context.Context, address *domain.Address) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, address)
	}
	return m.Err
}

func (m *MockAddressStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockAddressStore) ReassignCustomer(ctx context.Context, fromCustomer, toCustomer uuid.UUID) error {
	if m.ReassignCustomerFn != nil {
		return m.ReassignCustomerFn(ctx, fromCustomer, toCustomer)
	}
	return m.Err
}

func (m *MockAddressStore) WithTx(tx *sql.Tx) store.AddressStore {
	return m
}
