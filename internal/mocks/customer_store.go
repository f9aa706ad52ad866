package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/store"
)

// MockCustomerStore implements store.CustomerStore for testing
type MockCustomerStore struct {
	CreateFn      func(ctx context.Context, customer *domain.Customer) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByUserIDFn func(ctx context.Context, userID uuid.UUID) (*domain.Customer, error)
	ListFn        func(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	UpdateFn      func(ctx context.Context, customer *domain.Customer) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	Customer  *domain.Customer
	Customers []*domain.Customer
	Err       error
}

var _ store.CustomerStore = (*MockCustomerStore)(nil)

func (m *MockCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, customer)
	}
	return m.Err
}

func (m *MockCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Customer == nil {
		return nil, store.ErrCustomerNotFound
	}
	return m.Customer, nil
}

func (m *MockCustomerStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Customer == nil {
		return nil, store.ErrCustomerNotFound
	}
	return m.Customer, nil
}

func (m *MockCustomerStore) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return m.Customers, m.Err
}

func (m *MockCustomerStore) Update(ctx context.Context, customer *domain.Customer) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, customer)
	}
	return m.Err
}

func (m *MockCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockCustomerStore) WithTx(tx *sql.Tx) store.CustomerStore {
	return m
}
