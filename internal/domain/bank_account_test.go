package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankAccount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		account, err := NewBankAccount(userID, "Sparkasse", "DE89370400440532013000", "COBADEFFXXX")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, account.ID)
		assert.Equal(t, userID, account.UserID)
		assert.False(t, account.CreatedAt.IsZero())
	})

	tests := []struct {
		name    string
		userID  uuid.UUID
		bank    string
		iban    string
		swift   string
		wantErr error
	}{
		{"missing owner", uuid.Nil, "Sparkasse", "DE89", "COBADEFF", ErrEmptyBankAccountUser},
		{"missing bank name", userID, "", "DE89", "COBADEFF", ErrEmptyBankName},
		{"missing iban", userID, "Sparkasse", "", "COBADEFF", ErrEmptyIBAN},
		{"missing swift", userID, "Sparkasse", "DE89", "", ErrEmptySWIFT},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBankAccount(tt.userID, tt.bank, tt.iban, tt.swift)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBankAccountCheckOwner(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	account, err := NewBankAccount(userID, "Sparkasse", "DE89370400440532013000", "COBADEFFXXX")
	require.NoError(t, err)

	assert.True(t, account.CheckOwner(userID))
	assert.False(t, account.CheckOwner(uuid.New()))
}
