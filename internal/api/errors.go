package api

import (
	"errors"
	"net/http"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, service.ErrRoleChangeNotAllowed):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrRoleNotFound),
		errors.Is(err, store.ErrCustomerNotFound),
		errors.Is(err, store.ErrAddressNotFound),
		errors.Is(err, store.ErrBankAccountNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrRoleNameExists),
		errors.Is(err, store.ErrCustomerExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidAddressType),
		errors.Is(err, domain.ErrInvalidLocale),
		errors.Is(err, auth.ErrInvalidResetToken),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordMismatch):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidResetToken):
		return "Invalid or expired reset token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, service.ErrAccountInactive):
		return "Account is blocked"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Login required"

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return "Access denied"

	case errors.Is(err, service.ErrRoleChangeNotAllowed):
		return "Role change not allowed"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrRoleNotFound):
		return "Role not found"

	case errors.Is(err, store.ErrCustomerNotFound):
		return "Customer not found"

	case errors.Is(err, store.ErrAddressNotFound):
		return "Address not found"

	case errors.Is(err, store.ErrBankAccountNotFound):
		return "Bank account not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "This email is already taken"

	case errors.Is(err, store.ErrRoleNameExists):
		return "Role name already exists"

	case errors.Is(err, store.ErrCustomerExists):
		return "User already has a customer"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, service.ErrPasswordTooShort):
		return "Passwords should be more than 6 symbols length"

	case errors.Is(err, service.ErrPasswordMismatch):
		return "Passwords do not match"

	case errors.Is(err, domain.ErrInvalidAddressType):
		return "Address type must be billing or delivery"

	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email address"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and
// writes the response. A non-empty defaultMsg overrides the mapped message
// for generic errors. Validation errors carrying a field name become
// field-level error bodies.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		shared.RespondWithFieldErrors(w, r, shared.NewFieldError(verr.Field, verr.Message))
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if defaultMsg != "" && status == http.StatusInternalServerError {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
