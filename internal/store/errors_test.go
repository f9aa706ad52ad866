package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorsUnwrap(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		ErrUserNotFound,
		ErrRoleNotFound,
		ErrCustomerNotFound,
		ErrAddressNotFound,
		ErrBankAccountNotFound,
	} {
		assert.True(t, IsNotFoundError(err), "%v should be a not-found error", err)
		assert.False(t, IsDuplicateError(err))
	}

	// Wrapping must be preserved through further annotation.
	wrapped := fmt.Errorf("loading profile: %w", ErrUserNotFound)
	assert.True(t, IsNotFoundError(wrapped))
	assert.True(t, errors.Is(wrapped, ErrUserNotFound))
}

func TestDuplicateErrorsUnwrap(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrEmailExists, ErrRoleNameExists, ErrCustomerExists} {
		assert.True(t, IsDuplicateError(err), "%v should be a duplicate error", err)
		assert.False(t, IsNotFoundError(err))
	}
}
