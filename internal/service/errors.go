package service

import "errors"

// Common service-level errors
var (
	// ErrInvalidCredentials indicates the email/password combination does
	// not match a registered account. Unknown email and wrong password are
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive indicates the account exists but has been blocked.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrPasswordTooShort indicates a password change below the minimum length.
	ErrPasswordTooShort = errors.New("passwords should be more than 6 symbols length")

	// ErrPasswordMismatch indicates password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrRoleChangeNotAllowed indicates a non-admin tried to change a role.
	ErrRoleChangeNotAllowed = errors.New("role change not allowed")
)
