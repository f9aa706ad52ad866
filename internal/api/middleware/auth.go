package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/redact"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// AuthMiddleware provides JWT authentication for routes. Access tokens
// resolve to a full user identity with roles; guest tokens resolve to an
// anonymous customer identity.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate requires a valid access token and places the resolved user
// identity in the request context. Guest tokens are rejected here.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		identity, err := m.resolveIdentity(r, token)
		if err != nil {
			respondAuthError(w, r, err)
			return
		}
		if !identity.IsAuthenticated() {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
			return
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional resolves an identity when an Authorization header is present but
// lets anonymous requests through. Invalid tokens are still rejected so a
// client never silently loses its session.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.resolveIdentity(r, token)
		if err != nil {
			respondAuthError(w, r, err)
			return
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveIdentity validates the token as an access token first and falls
// back to a guest token. Access tokens are checked against the user store
// so blocked or deleted accounts lose access immediately.
func (m *AuthMiddleware) resolveIdentity(r *http.Request, token string) (shared.Identity, error) {
	claims, err := m.jwtService.ValidateToken(r.Context(), token)
	if err == nil {
		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return shared.Identity{}, auth.ErrInvalidToken
			}
			return shared.Identity{}, err
		}
		if !user.Active {
			return shared.Identity{}, auth.ErrInvalidToken
		}

		roles := make([]string, 0, len(user.Roles))
		for _, role := range user.Roles {
			roles = append(roles, role.Name)
		}
		return shared.Identity{
			UserID: user.ID,
			Roles:  roles,
			Admin:  user.IsSuperuser(),
		}, nil
	}

	if errors.Is(err, auth.ErrWrongTokenType) {
		guestClaims, guestErr := m.jwtService.ValidateGuestToken(r.Context(), token)
		if guestErr != nil {
			return shared.Identity{}, auth.ErrInvalidToken
		}
		return shared.Identity{CustomerID: guestClaims.CustomerID}, nil
	}

	return shared.Identity{}, err
}

// RequireAdmin allows only identities carrying the admin role. It must run
// after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := shared.IdentityFromContext(r.Context())
		if !identity.Admin {
			shared.RespondWithError(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
	default:
		slog.Error("failed to validate token", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
	}
}
