package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/config"
	"github.com/lindenshop/storefront-api/internal/platform/logger"
)

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey           []byte
	tokenLifetime        time.Duration    // Access token lifetime
	refreshTokenLifetime time.Duration    // Refresh token lifetime
	guestTokenLifetime   time.Duration    // Guest (anonymous customer) token lifetime
	resetTokenLifetime   time.Duration    // Password-reset token lifetime
	timeFunc             func() time.Time // Injectable for testing
	clockSkew            time.Duration    // Allowed time difference for validation to handle clock drift
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID     uuid.UUID `json:"uid,omitempty"`
	CustomerID uuid.UUID `json:"cid,omitempty"`
	TokenType  string    `json:"type"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	// Validate that the secret meets minimum length requirements
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTService{
		signingKey:           []byte(cfg.JWTSecret),
		tokenLifetime:        time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		guestTokenLifetime:   time.Duration(cfg.GuestTokenLifetimeMinutes) * time.Minute,
		resetTokenLifetime:   time.Duration(cfg.ResetTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            2 * time.Minute, // Allow 2 minutes of clock skew to handle minor time drifts
	}, nil
}

// GenerateToken creates a signed JWT access token with user claims.
func (s *hmacJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, jwtCustomClaims{
		UserID:    userID,
		TokenType: TokenTypeAccess,
	}, userID.String(), s.tokenLifetime)
}

// GenerateRefreshToken creates a signed JWT refresh token with user claims.
// Refresh tokens have longer lifetime than access tokens and are used to
// obtain new token pairs.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, jwtCustomClaims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
	}, userID.String(), s.refreshTokenLifetime)
}

// GenerateGuestToken creates a signed JWT guest token bound to an
// anonymous customer.
func (s *hmacJWTService) GenerateGuestToken(ctx context.Context, customerID uuid.UUID) (string, error) {
	return s.generate(ctx, jwtCustomClaims{
		CustomerID: customerID,
		TokenType:  TokenTypeGuest,
	}, customerID.String(), s.guestTokenLifetime)
}

// GenerateResetToken creates a signed JWT password-reset token with user claims.
func (s *hmacJWTService) GenerateResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, jwtCustomClaims{
		UserID:    userID,
		TokenType: TokenTypeReset,
	}, userID.String(), s.resetTokenLifetime)
}

// ValidateToken validates a JWT access token and returns the claims if valid.
// It verifies the token has type "access" and returns ErrWrongTokenType if not.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeAccess)
}

// ValidateRefreshToken validates a JWT refresh token and returns the claims
// if valid. It verifies the token has type "refresh" and returns
// ErrWrongTokenType if not.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeRefresh)
}

// ValidateGuestToken validates a JWT guest token and returns the claims,
// including the anonymous customer ID, if valid.
func (s *hmacJWTService) ValidateGuestToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeGuest)
}

// ValidateResetToken validates a JWT password-reset token and returns the
// claims if valid.
func (s *hmacJWTService) ValidateResetToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, TokenTypeReset)
}

// generate signs the given claims with HMAC-SHA256. The subject and expiry
// are filled in here so every token type shares the same registered-claims
// layout.
func (s *hmacJWTService) generate(
	ctx context.Context,
	claims jwtCustomClaims,
	subject string,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		ID:        uuid.New().String(), // Unique token ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT token",
			"error", err,
			"subject", subject,
			"token_type", claims.TokenType,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", claims.TokenType, err)
	}

	return signedToken, nil
}

// validate parses a token, verifies its signature and time claims, and
// checks that its type matches the expected one. Per-type sentinel errors
// keep refresh and reset failures distinguishable at the API layer.
func (s *hmacJWTService) validate(
	ctx context.Context,
	tokenString string,
	expectedType string,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew), // Allow for clock skew when validating time claims
		jwt.WithTimeFunc(func() time.Time {
			return now // Use our injected time function for validation
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method is what we expect
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired",
				"error", err,
				"token_type", expectedType)
			return nil, expiredError(expectedType)
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid",
				"error", err,
				"token_type", expectedType)
			if expectedType == TokenTypeAccess {
				return nil, ErrTokenNotYetValid
			}
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token",
				"error", err,
				"token_type", expectedType)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature",
				"error", err,
				"token_type", expectedType)
		default:
			log.Debug("token validation failed: other validation error",
				"error", err,
				"token_type", expectedType,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, invalidError(expectedType)
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, invalidError(expectedType)
	}

	if claims.TokenType != expectedType {
		log.Debug("token validation failed: wrong token type",
			"expected", expectedType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	log.Debug("token validated successfully",
		"subject", claims.Subject,
		"token_type", claims.TokenType,
		"token_id", claims.ID,
		"expiry", claims.ExpiresAt.Time)

	return &Claims{
		UserID:     claims.UserID,
		CustomerID: claims.CustomerID,
		TokenType:  claims.TokenType,
		Subject:    claims.Subject,
		IssuedAt:   claims.IssuedAt.Time,
		ExpiresAt:  claims.ExpiresAt.Time,
		ID:         claims.ID,
	}, nil
}

func expiredError(tokenType string) error {
	switch tokenType {
	case TokenTypeRefresh:
		return ErrExpiredRefreshToken
	case TokenTypeReset:
		return ErrInvalidResetToken
	default:
		return ErrExpiredToken
	}
}

func invalidError(tokenType string) error {
	switch tokenType {
	case TokenTypeRefresh:
		return ErrInvalidRefreshToken
	case TokenTypeReset:
		return ErrInvalidResetToken
	default:
		return ErrInvalidToken
	}
}
