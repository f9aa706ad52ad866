package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrUserNotFound, ErrCustomerNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrRoleNotFound indicates that the requested role does not exist.
	ErrRoleNotFound = fmt.Errorf("%w: role", ErrNotFound)

	// ErrCustomerNotFound indicates that the requested customer does not exist.
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)

	// ErrAddressNotFound indicates that the requested address does not exist.
	ErrAddressNotFound = fmt.Errorf("%w: address", ErrNotFound)

	// ErrBankAccountNotFound indicates that the requested bank account does not exist.
	ErrBankAccountNotFound = fmt.Errorf("%w: bank account", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrRoleNameExists indicates that a role with the given name already exists.
	ErrRoleNameExists = fmt.Errorf("%w: role name", ErrDuplicate)

	// ErrCustomerExists indicates that the user already has a customer.
	// Each user has at most one customer.
	ErrCustomerExists = fmt.Errorf("%w: customer", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
