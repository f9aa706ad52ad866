package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/store"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	RegisterFn              func(ctx context.Context, email, password string) (*domain.User, service.TokenPair, error)
	AuthenticateFn          func(ctx context.Context, email, password string, guestCustomerID uuid.UUID) (*domain.User, service.TokenPair, error)
	RefreshTokensFn         func(ctx context.Context, refreshToken string) (service.TokenPair, error)
	InitiatePasswordResetFn func(ctx context.Context, email string) error
	CompletePasswordResetFn func(ctx context.Context, token, password string) error

	User *domain.User
	Pair service.TokenPair
	Err  error
}

var _ service.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) Register(ctx context.Context, email, password string) (*domain.User, service.TokenPair, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password)
	}
	return m.User, m.Pair, m.Err
}

func (m *MockAccountService) Authenticate(ctx context.Context, email, password string, guestCustomerID uuid.UUID) (*domain.User, service.TokenPair, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password, guestCustomerID)
	}
	return m.User, m.Pair, m.Err
}

func (m *MockAccountService) RefreshTokens(ctx context.Context, refreshToken string) (service.TokenPair, error) {
	if m.RefreshTokensFn != nil {
		return m.RefreshTokensFn(ctx, refreshToken)
	}
	return m.Pair, m.Err
}

func (m *MockAccountService) InitiatePasswordReset(ctx context.Context, email string) error {
	if m.InitiatePasswordResetFn != nil {
		return m.InitiatePasswordResetFn(ctx, email)
	}
	return m.Err
}

func (m *MockAccountService) CompletePasswordReset(ctx context.Context, token, password string) error {
	if m.CompletePasswordResetFn != nil {
		return m.CompletePasswordResetFn(ctx, token, password)
	}
	return m.Err
}

// MockCustomerService implements service.CustomerService for testing
type MockCustomerService struct {
	EnsureCustomerFn func(ctx context.Context, userID, guestCustomerID uuid.UUID, params service.CustomerParams) (*domain.Customer, bool, error)
	GetCustomerFn    func(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetOwnCustomerFn func(ctx context.Context, userID uuid.UUID) (*domain.Customer, error)
	ListCustomersFn  func(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	UpdateCustomerFn func(ctx context.Context, id uuid.UUID, params service.CustomerParams) (*domain.Customer, error)
	DeleteCustomerFn func(ctx context.Context, id uuid.UUID) error
	CreateAddressFn  func(ctx context.Context, customerID uuid.UUID, address *domain.Address) error

	Customer  *domain.Customer
	Customers []*domain.Customer
	Created   bool
	Err       error
}

var _ service.CustomerService = (*MockCustomerService)(nil)

func (m *MockCustomerService) EnsureCustomer(ctx context.Context, userID, guestCustomerID uuid.UUID, params service.CustomerParams) (*domain.Customer, bool, error) {
	if m.EnsureCustomerFn != nil {
		return m.EnsureCustomerFn(ctx, userID, guestCustomerID, params)
	}
	return m.Customer, m.Created, m.Err
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if m.GetCustomerFn != nil {
		return m.GetCustomerFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Customer == nil {
		return nil, store.ErrCustomerNotFound
	}
	return m.Customer, nil
}

func (m *MockCustomerService) GetOwnCustomer(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
	if m.GetOwnCustomerFn != nil {
		return m.GetOwnCustomerFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Customer == nil {
		return nil, store.ErrCustomerNotFound
	}
	return m.Customer, nil
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	if m.ListCustomersFn != nil {
		return m.ListCustomersFn(ctx, limit, offset)
	}
	return m.Customers, m.Err
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, params service.CustomerParams) (*domain.Customer, error) {
	if m.UpdateCustomerFn != nil {
		return m.UpdateCustomerFn(ctx, id, params)
	}
	return m.Customer, m.Err
}

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if m.DeleteCustomerFn != nil {
		return m.DeleteCustomerFn(ctx, id)
	}
	return m.Err
}

func (m *MockCustomerService) CreateAddress(ctx context.Context, customerID uuid.UUID, address *domain.Address) error {
	if m.CreateAddressFn != nil {
		return m.CreateAddressFn(ctx, customerID, address)
	}
	return m.Err
}

// MockUserService implements service.UserService for testing
type MockUserService struct {
	GetUserFn        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListUsersFn      func(ctx context.Context, filter store.UserFilter) ([]*domain.User, error)
	UpdateProfileFn  func(ctx context.Context, userID uuid.UUID, params service.ProfileParams, actorIsAdmin bool) (*domain.User, error)
	ConfirmEmailFn   func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	DeleteUserFn     func(ctx context.Context, userID uuid.UUID) error

	User  *domain.User
	Users []*domain.User
	Err   error
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.User == nil {
		return nil, store.ErrUserNotFound
	}
	return m.User, nil
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserByEmailFn != nil {
		return m.GetUserByEmailFn(ctx, email)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.User == nil {
		return nil, store.ErrUserNotFound
	}
	return m.User, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, filter)
	}
	return m.Users, m.Err
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, params service.ProfileParams, actorIsAdmin bool) (*domain.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, userID, params, actorIsAdmin)
	}
	return m.User, m.Err
}

func (m *MockUserService) ConfirmEmail(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.ConfirmEmailFn != nil {
		return m.ConfirmEmailFn(ctx, userID)
	}
	return m.User, m.Err
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return m.Err
}

// MockRoleService implements service.RoleService for testing
type MockRoleService struct {
	CreateRoleFn func(ctx context.Context, name, description string) (*domain.Role, error)
	GetRoleFn    func(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	ListRolesFn  func(ctx context.Context) ([]*domain.Role, error)
	UpdateRoleFn func(ctx context.Context, id uuid.UUID, params service.RoleParams) (*domain.Role, error)

	Role  *domain.Role
	Roles []*domain.Role
	Err   error
}

var _ service.RoleService = (*MockRoleService)(nil)

func (m *MockRoleService) CreateRole(ctx context.Context, name, description string) (*domain.Role, error) {
	if m.CreateRoleFn != nil {
		return m.CreateRoleFn(ctx, name, description)
	}
	return m.Role, m.Err
}

func (m *MockRoleService) GetRole(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	if m.GetRoleFn != nil {
		return m.GetRoleFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Role == nil {
		return nil, store.ErrRoleNotFound
	}
	return m.Role, nil
}

func (m *MockRoleService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	if m.ListRolesFn != nil {
		return m.ListRolesFn(ctx)
	}
	return m.Roles, m.Err
}

func (m *MockRoleService) UpdateRole(ctx context.Context, id uuid.UUID, params service.RoleParams) (*domain.Role, error) {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, params)
	}
	return m.Role, m.Err
}
