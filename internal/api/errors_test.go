package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", service.ErrAccountInactive, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"role change", service.ErrRoleChangeNotAllowed, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"customer not found", store.ErrCustomerNotFound, http.StatusNotFound},
		{"bank account not found", store.ErrBankAccountNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"role name exists", store.ErrRoleNameExists, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"bad address type", domain.ErrInvalidAddressType, http.StatusBadRequest},
		{"short password", service.ErrPasswordTooShort, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("loading user: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, "Invalid email or password"},
		{"blocked account", service.ErrAccountInactive, "Account is blocked"},
		{"email exists", store.ErrEmailExists, "This email is already taken"},
		{"short password", service.ErrPasswordTooShort, "Passwords should be more than 6 symbols length"},
		{"wrapped forbidden", fmt.Errorf("access check: %w", domain.ErrForbidden), "Access denied"},
		{"internal detail hidden", errors.New("pq: connection refused"), "An unexpected error occurred"},
		{"nil", nil, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("validation error with field becomes field errors", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/accounts/sessions", nil)

		err := domain.NewValidationError("email", "Invalid email address", domain.ErrInvalidEmail)
		HandleAPIError(recorder, req, err, "")

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Invalid email address", decodeFieldErrors(t, recorder)["email"])
	})

	t.Run("default message only overrides internal errors", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/accounts/profiles", nil)

		HandleAPIError(recorder, req, store.ErrUserNotFound, "Failed to load profile")

		require.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "User not found")
	})

	t.Run("unknown error uses default message", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/accounts/profiles", nil)

		HandleAPIError(recorder, req, errors.New("boom"), "Failed to load profile")

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Failed to load profile")
		assert.NotContains(t, recorder.Body.String(), "boom")
	})
}
