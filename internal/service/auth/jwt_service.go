package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token types issued by the service. Each type is only accepted by its
// matching Validate method, so a refresh token can never be used as an
// access token and a guest token never grants an authenticated identity.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeGuest   = "guest"
	TokenTypeReset   = "reset"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates the provided access token string and extracts
	// the claims. Returns an error if validation fails (expired, invalid
	// signature, wrong token type, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the user.
	// Refresh tokens have a longer lifetime and are used to obtain new
	// access tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken validates the provided refresh token string and
	// extracts the claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateGuestToken creates a signed JWT guest token bound to an
	// anonymous customer. Guest tokens carry no user identity and let an
	// unauthenticated shopper keep a cart and checkout profile across
	// requests.
	GenerateGuestToken(ctx context.Context, customerID uuid.UUID) (string, error)

	// ValidateGuestToken validates the provided guest token string and
	// extracts the claims, including the anonymous customer ID.
	ValidateGuestToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateResetToken creates a signed JWT password-reset token for the
	// user. Reset tokens are short-lived and single-purpose.
	GenerateResetToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateResetToken validates the provided password-reset token string
	// and extracts the claims.
	ValidateResetToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	// Zero for guest tokens.
	UserID uuid.UUID `json:"uid,omitempty"`

	// CustomerID is the anonymous customer bound to a guest token.
	// Zero for all other token types.
	CustomerID uuid.UUID `json:"cid,omitempty"`

	// TokenType indicates the purpose of the token ("access", "refresh",
	// "guest" or "reset"). Used to prevent token misuse across contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
