package mocks

import (
	"errors"

	"github.com/lindenshop/storefront-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// The default behavior prefixes the password so tests can assert on the
// stored value without real bcrypt work.
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)
	Err    error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// It accepts passwords hashed by MockPasswordHasher's default behavior.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
	Err       error
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.Err != nil {
		return m.Err
	}
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}
