package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/mocks"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAccountService(
	users *mocks.MockUserStore,
	jwtSvc *mocks.MockJWTService,
	sender *MockEmailSender,
) AccountService {
	return NewAccountService(
		users,
		&mocks.MockCustomerStore{},
		&mocks.MockAddressStore{},
		jwtSvc,
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{},
		sender,
		nil, // no transactional paths exercised in these tests
		testLogger(),
	)
}

func activeUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "secret-password")
	require.NoError(t, err)
	user.HashedPassword = "hashed:secret-password"
	user.Password = ""
	return user
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newAccountService(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &MockEmailSender{})

	_, _, err := svc.Authenticate(context.Background(), "nobody@example.com", "pw", uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "blocked@example.com")
	user.Active = false

	svc := newAccountService(&mocks.MockUserStore{User: user}, &mocks.MockJWTService{}, &MockEmailSender{})

	_, _, err := svc.Authenticate(context.Background(), user.Email, "secret-password", uuid.Nil)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "shopper@example.com")

	svc := newAccountService(&mocks.MockUserStore{User: user}, &mocks.MockJWTService{}, &MockEmailSender{})

	_, _, err := svc.Authenticate(context.Background(), user.Email, "wrong", uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_ValidationFailure(t *testing.T) {
	t.Parallel()

	svc := newAccountService(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &MockEmailSender{})

	_, _, err := svc.Register(context.Background(), "shopper@example.com", "tiny")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	_, _, err = svc.Register(context.Background(), "not-an-email", "long-enough")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestRefreshTokens(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "shopper@example.com")

	t.Run("valid token for active user", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: user.ID, TokenType: auth.TokenTypeRefresh},
			Token:  "new-token",
		}
		svc := newAccountService(&mocks.MockUserStore{User: user}, jwtSvc, &MockEmailSender{})

		pair, err := svc.RefreshTokens(context.Background(), "refresh-token")
		require.NoError(t, err)
		assert.Equal(t, "new-token", pair.AccessToken)
		assert.Equal(t, "new-token", pair.RefreshToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{Err: auth.ErrInvalidRefreshToken}
		svc := newAccountService(&mocks.MockUserStore{User: user}, jwtSvc, &MockEmailSender{})

		_, err := svc.RefreshTokens(context.Background(), "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("user deleted since issuance", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: uuid.New(), TokenType: auth.TokenTypeRefresh},
		}
		svc := newAccountService(&mocks.MockUserStore{}, jwtSvc, &MockEmailSender{})

		_, err := svc.RefreshTokens(context.Background(), "refresh-token")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("account blocked since issuance", func(t *testing.T) {
		t.Parallel()

		blocked := activeUser(t, "blocked@example.com")
		blocked.Active = false
		jwtSvc := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: blocked.ID, TokenType: auth.TokenTypeRefresh},
		}
		svc := newAccountService(&mocks.MockUserStore{User: blocked}, jwtSvc, &MockEmailSender{})

		_, err := svc.RefreshTokens(context.Background(), "refresh-token")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})
}

func TestInitiatePasswordReset(t *testing.T) {
	t.Parallel()

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		svc := newAccountService(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &MockEmailSender{})

		err := svc.InitiatePasswordReset(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("token handed to sender", func(t *testing.T) {
		t.Parallel()

		user := activeUser(t, "shopper@example.com")
		sender := &MockEmailSender{}
		jwtSvc := &mocks.MockJWTService{Token: "reset-token"}
		svc := newAccountService(&mocks.MockUserStore{User: user}, jwtSvc, sender)

		err := svc.InitiatePasswordReset(context.Background(), user.Email)
		require.NoError(t, err)
		require.Len(t, sender.SentEmails, 1)
		assert.Equal(t, user.Email, sender.SentEmails[0])
		assert.Equal(t, "reset-token", sender.SentTokens[0])
	})
}

func TestCompletePasswordReset_Validation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{Err: auth.ErrInvalidResetToken}
		svc := newAccountService(&mocks.MockUserStore{}, jwtSvc, &MockEmailSender{})

		err := svc.CompletePasswordReset(context.Background(), "bad", "new-password")
		assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
	})

	t.Run("password too short", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: userID, TokenType: auth.TokenTypeReset},
		}
		svc := newAccountService(&mocks.MockUserStore{}, jwtSvc, &MockEmailSender{})

		err := svc.CompletePasswordReset(context.Background(), "token", "tiny")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestMergeAnonymousCustomer(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "shopper@example.com")

	t.Run("merges into the existing customer", func(t *testing.T) {
		t.Parallel()

		anonymous := domain.NewAnonymousCustomer()
		billingID := uuid.New()
		anonymous.BillingAddressID = &billingID

		existing := domain.NewCustomer(user.ID)
		deliveryID := uuid.New()
		existing.DeliveryAddressID = &deliveryID

		var updated *domain.Customer
		var deletedID, reassignedFrom, reassignedTo uuid.UUID
		customers := &mocks.MockCustomerStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
				return anonymous, nil
			},
			GetByUserIDFn: func(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
				return existing, nil
			},
			UpdateFn: func(ctx context.Context, customer *domain.Customer) error {
				updated = customer
				return nil
			},
			DeleteFn: func(ctx context.Context, id uuid.UUID) error {
				deletedID = id
				return nil
			},
		}
		addresses := &mocks.MockAddressStore{
			ReassignCustomerFn: func(ctx context.Context, from, to uuid.UUID) error {
				reassignedFrom = from
				reassignedTo = to
				return nil
			},
		}
		svc := &AccountServiceImpl{
			customerStore: customers,
			addressStore:  addresses,
			logger:        testLogger(),
		}

		err := svc.mergeAnonymousCustomer(context.Background(), nil, user, anonymous.ID)
		require.NoError(t, err)

		assert.Equal(t, anonymous.ID, reassignedFrom)
		assert.Equal(t, existing.ID, reassignedTo)
		assert.Equal(t, anonymous.ID, deletedID)

		require.NotNil(t, updated)
		assert.Equal(t, existing.ID, updated.ID)
		assert.Equal(t, &billingID, updated.BillingAddressID)
		assert.Equal(t, &deliveryID, updated.DeliveryAddressID)
	})

	t.Run("filled default slots are kept", func(t *testing.T) {
		t.Parallel()

		anonymous := domain.NewAnonymousCustomer()
		anonymousBilling := uuid.New()
		anonymous.BillingAddressID = &anonymousBilling

		existing := domain.NewCustomer(user.ID)
		existingBilling := uuid.New()
		existing.BillingAddressID = &existingBilling

		customers := &mocks.MockCustomerStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
				return anonymous, nil
			},
			GetByUserIDFn: func(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
				return existing, nil
			},
		}
		svc := &AccountServiceImpl{
			customerStore: customers,
			addressStore:  &mocks.MockAddressStore{},
			logger:        testLogger(),
		}

		err := svc.mergeAnonymousCustomer(context.Background(), nil, user, anonymous.ID)
		require.NoError(t, err)
		assert.Equal(t, &existingBilling, existing.BillingAddressID)
	})

	t.Run("attaches the anonymous customer when the user has none", func(t *testing.T) {
		t.Parallel()

		anonymous := domain.NewAnonymousCustomer()

		var updated *domain.Customer
		deleted := false
		customers := &mocks.MockCustomerStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
				return anonymous, nil
			},
			GetByUserIDFn: func(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
				return nil, store.ErrCustomerNotFound
			},
			UpdateFn: func(ctx context.Context, customer *domain.Customer) error {
				updated = customer
				return nil
			},
			DeleteFn: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		}
		svc := &AccountServiceImpl{
			customerStore: customers,
			addressStore:  &mocks.MockAddressStore{},
			logger:        testLogger(),
		}

		err := svc.mergeAnonymousCustomer(context.Background(), nil, user, anonymous.ID)
		require.NoError(t, err)

		require.NotNil(t, updated)
		assert.Equal(t, anonymous.ID, updated.ID)
		require.NotNil(t, updated.UserID)
		assert.Equal(t, user.ID, *updated.UserID)
		assert.Equal(t, user.Email, updated.Email)
		assert.False(t, deleted)
	})

	t.Run("stale guest token is ignored", func(t *testing.T) {
		t.Parallel()

		customers := &mocks.MockCustomerStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
				return nil, store.ErrCustomerNotFound
			},
		}
		svc := &AccountServiceImpl{
			customerStore: customers,
			addressStore:  &mocks.MockAddressStore{},
			logger:        testLogger(),
		}

		err := svc.mergeAnonymousCustomer(context.Background(), nil, user, uuid.New())
		assert.NoError(t, err)
	})

	t.Run("owned customer is never merged", func(t *testing.T) {
		t.Parallel()

		owned := domain.NewCustomer(uuid.New())

		customers := &mocks.MockCustomerStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
				return owned, nil
			},
			DeleteFn: func(ctx context.Context, id uuid.UUID) error {
				t.Error("owned customer must not be deleted")
				return nil
			},
		}
		svc := &AccountServiceImpl{
			customerStore: customers,
			addressStore:  &mocks.MockAddressStore{},
			logger:        testLogger(),
		}

		err := svc.mergeAnonymousCustomer(context.Background(), nil, user, owned.ID)
		assert.NoError(t, err)
	})
}
