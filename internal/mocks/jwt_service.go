package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateGuestTokenFn   func(ctx context.Context, customerID uuid.UUID) (string, error)
	ValidateGuestTokenFn   func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateResetTokenFn   func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateResetTokenFn   func(ctx context.Context, tokenString string) (*auth.Claims, error)

	Token  string
	Claims *auth.Claims
	Err    error
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.Err
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.Err
}

func (m *MockJWTService) GenerateGuestToken(ctx context.Context, customerID uuid.UUID) (string, error) {
	if m.GenerateGuestTokenFn != nil {
		return m.GenerateGuestTokenFn(ctx, customerID)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateGuestToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateGuestTokenFn != nil {
		return m.ValidateGuestTokenFn(ctx, tokenString)
	}
	return m.Claims, m.Err
}

func (m *MockJWTService) GenerateResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateResetTokenFn != nil {
		return m.GenerateResetTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateResetToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateResetTokenFn != nil {
		return m.ValidateResetTokenFn(ctx, tokenString)
	}
	return m.Claims, m.Err
}
