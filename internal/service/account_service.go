package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// TokenPair bundles the access and refresh tokens issued on registration
// and login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccountService handles registration, authentication and password reset.
type AccountService interface {
	// Register creates a new user account and issues a token pair.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, email, password string) (*domain.User, TokenPair, error)

	// Authenticate verifies credentials and issues a fresh token pair.
	// If guestCustomerID identifies an anonymous customer from a guest
	// token, that customer is merged into the user's customer.
	// Returns ErrInvalidCredentials or ErrAccountInactive on failure.
	Authenticate(ctx context.Context, email, password string, guestCustomerID uuid.UUID) (*domain.User, TokenPair, error)

	// RefreshTokens exchanges a valid refresh token for a new token pair.
	RefreshTokens(ctx context.Context, refreshToken string) (TokenPair, error)

	// InitiatePasswordReset issues a reset token for the account and hands
	// it to the email sender. Returns store.ErrUserNotFound for unknown
	// email addresses.
	InitiatePasswordReset(ctx context.Context, email string) error

	// CompletePasswordReset sets a new password for the account identified
	// by the reset token.
	CompletePasswordReset(ctx context.Context, token, password string) error
}

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	userStore     store.UserStore
	customerStore store.CustomerStore
	addressStore  store.AddressStore
	jwtService    auth.JWTService
	hasher        auth.PasswordHasher
	verifier      auth.PasswordVerifier
	emailSender   EmailSender
	db            *sql.DB
	logger        *slog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	userStore store.UserStore,
	customerStore store.CustomerStore,
	addressStore store.AddressStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	emailSender EmailSender,
	db *sql.DB,
	logger *slog.Logger,
) AccountService {
	return &AccountServiceImpl{
		userStore:     userStore,
		customerStore: customerStore,
		addressStore:  addressStore,
		jwtService:    jwtService,
		hasher:        hasher,
		verifier:      verifier,
		emailSender:   emailSender,
		db:            db,
		logger:        logger.With("component", "account_service"),
	}
}

// Register creates a new user account and issues a token pair.
func (s *AccountServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("registration rejected by validation",
			"error", err)
		return nil, TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password during registration",
			"error", err)
		return nil, TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register existing email")
			return nil, TokenPair{}, err
		}
		s.logger.Error("failed to save user during registration",
			"error", err)
		return nil, TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID)

	return user, pair, nil
}

// Authenticate verifies credentials, records the login and merges any
// anonymous customer carried by a guest token.
func (s *AccountServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
	guestCustomerID uuid.UUID,
) (*domain.User, TokenPair, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login with unknown email")
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user for login",
			"error", err)
		return nil, TokenPair{}, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !user.Active {
		s.logger.Debug("login attempt on inactive account",
			"user_id", user.ID)
		return nil, TokenPair{}, ErrAccountInactive
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login with wrong password",
			"user_id", user.ID)
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)

		now := time.Now().UTC()
		user.CurrentLoginAt = &now
		if err := txUsers.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to record login: %w", err)
		}

		if guestCustomerID != uuid.Nil {
			if err := s.mergeAnonymousCustomer(ctx, tx, user, guestCustomerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("login transaction failed",
			"error", err,
			"user_id", user.ID)
		return nil, TokenPair{}, fmt.Errorf("failed to authenticate: %w", err)
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.logger.Info("user authenticated",
		"user_id", user.ID,
		"merged_guest", guestCustomerID != uuid.Nil)

	return user, pair, nil
}

// mergeAnonymousCustomer folds the anonymous customer referenced by a guest
// token into the user's customer. Addresses move over, empty default address
// slots are filled from the anonymous row, and the anonymous row is removed.
// If the user has no customer yet the anonymous one is attached instead.
func (s *AccountServiceImpl) mergeAnonymousCustomer(
	ctx context.Context,
	tx *sql.Tx,
	user *domain.User,
	guestCustomerID uuid.UUID,
) error {
	txCustomers := s.customerStore.WithTx(tx)
	txAddresses := s.addressStore.WithTx(tx)

	anonymous, err := txCustomers.GetByID(ctx, guestCustomerID)
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			// Stale guest token, nothing to merge.
			return nil
		}
		return fmt.Errorf("failed to load anonymous customer: %w", err)
	}
	if !anonymous.IsAnonymous() {
		return nil
	}

	existing, err := txCustomers.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			// First login with a guest profile: adopt it as the user's customer.
			anonymous.UserID = &user.ID
			if anonymous.Email == "" {
				anonymous.Email = user.Email
			}
			if err := txCustomers.Update(ctx, anonymous); err != nil {
				return fmt.Errorf("failed to attach anonymous customer: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to load customer for merge: %w", err)
	}

	if err := txAddresses.ReassignCustomer(ctx, anonymous.ID, existing.ID); err != nil {
		return fmt.Errorf("failed to move addresses during merge: %w", err)
	}
	if existing.BillingAddressID == nil && anonymous.BillingAddressID != nil {
		existing.BillingAddressID = anonymous.BillingAddressID
	}
	if existing.DeliveryAddressID == nil && anonymous.DeliveryAddressID != nil {
		existing.DeliveryAddressID = anonymous.DeliveryAddressID
	}
	if err := txCustomers.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update customer during merge: %w", err)
	}
	if err := txCustomers.Delete(ctx, anonymous.ID); err != nil {
		return fmt.Errorf("failed to remove anonymous customer: %w", err)
	}

	s.logger.Debug("anonymous customer merged",
		"user_id", user.ID,
		"anonymous_customer_id", anonymous.ID)

	return nil
}

// RefreshTokens exchanges a valid refresh token for a new token pair.
func (s *AccountServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	// The account may have been blocked since the refresh token was issued.
	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return TokenPair{}, auth.ErrInvalidRefreshToken
		}
		return TokenPair{}, fmt.Errorf("failed to refresh tokens: %w", err)
	}
	if !user.Active {
		return TokenPair{}, ErrAccountInactive
	}

	return s.issueTokens(ctx, user.ID)
}

// InitiatePasswordReset issues a reset token and hands it to the email sender.
func (s *AccountServiceImpl) InitiatePasswordReset(ctx context.Context, email string) error {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("password reset for unknown email")
			return err
		}
		s.logger.Error("failed to load user for password reset",
			"error", err)
		return fmt.Errorf("failed to initiate password reset: %w", err)
	}

	token, err := s.jwtService.GenerateResetToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate reset token",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("failed to initiate password reset: %w", err)
	}

	if err := s.emailSender.SendPasswordReset(ctx, user.Email, token); err != nil {
		s.logger.Error("failed to send password reset email",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("failed to initiate password reset: %w", err)
	}

	s.logger.Info("password reset initiated",
		"user_id", user.ID)

	return nil
}

// CompletePasswordReset sets a new password for the token's account.
func (s *AccountServiceImpl) CompletePasswordReset(ctx context.Context, token, password string) error {
	claims, err := s.jwtService.ValidateResetToken(ctx, token)
	if err != nil {
		return err
	}

	if len(password) < domain.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > domain.MaxPasswordLength {
		return domain.ErrPasswordTooLong
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password during reset",
			"error", err,
			"user_id", claims.UserID)
		return fmt.Errorf("failed to complete password reset: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)

		user, err := txUsers.GetByID(ctx, claims.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user for password reset: %w", err)
		}

		user.HashedPassword = hashed
		user.Password = ""
		if err := txUsers.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("password reset transaction failed",
			"error", err,
			"user_id", claims.UserID)
		return err
	}

	s.logger.Info("password reset completed",
		"user_id", claims.UserID)

	return nil
}

func (s *AccountServiceImpl) issueTokens(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
	access, err := s.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		s.logger.Error("failed to generate access token",
			"error", err,
			"user_id", userID)
		return TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	refresh, err := s.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		s.logger.Error("failed to generate refresh token",
			"error", err,
			"user_id", userID)
		return TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
