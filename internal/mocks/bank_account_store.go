package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/store"
)

// MockBankAccountStore implements store.BankAccountStore for testing
type MockBankAccountStore struct {
	CreateFn     func(ctx context.Context, account *domain.BankAccount) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.BankAccount, error)
	UpdateFn     func(ctx context.Context, account *domain.BankAccount) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	Account  *domain.BankAccount
	Accounts []*domain.BankAccount
	Err      error
}

var _ store.BankAccountStore = (*MockBankAccountStore)(nil)

func (m *MockBankAccountStore) Create(ctx context.Context, account *domain.BankAccount) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}
	return m.Err
}

func (m *MockBankAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Account == nil {
		return nil, store.ErrBankAccountNotFound
	}
	return m.Account, nil
}

func (m *MockBankAccountStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.BankAccount, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return m.Accounts, m.Err
}

func (m *MockBankAccountStore) Update(ctx context.Context, account *domain.BankAccount) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, account)
	}
	return m.Err
}

func (m *MockBankAccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockBankAccountStore) WithTx(tx *sql.Tx) store.BankAccountStore {
	return m
}

// MockSocialConnectionStore implements store.SocialConnectionStore for testing
type MockSocialConnectionStore struct {
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.SocialConnection, error)

	Connections []*domain.SocialConnection
	Err         error
}

var _ store.SocialConnectionStore = (*MockSocialConnectionStore)(nil)

func (m *MockSocialConnectionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SocialConnection, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return m.Connections, m.Err
}
