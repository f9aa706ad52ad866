package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	customer := NewCustomer(userID)

	require.NotNil(t, customer.UserID)
	assert.Equal(t, userID, *customer.UserID)
	assert.False(t, customer.IsAnonymous())
	assert.NoError(t, customer.Validate())
}

func TestNewAnonymousCustomer(t *testing.T) {
	t.Parallel()

	customer := NewAnonymousCustomer()

	assert.Nil(t, customer.UserID)
	assert.True(t, customer.IsAnonymous())
	assert.NoError(t, customer.Validate())
}

func TestCustomerValidateEmail(t *testing.T) {
	t.Parallel()

	customer := NewAnonymousCustomer()
	customer.Email = "broken"
	assert.ErrorIs(t, customer.Validate(), ErrInvalidEmail)

	customer.Email = "shopper@example.com"
	assert.NoError(t, customer.Validate())
}

func TestCustomerSetAddress(t *testing.T) {
	t.Parallel()

	billing := uuid.New()
	delivery := uuid.New()

	tests := []struct {
		name         string
		addressType  string
		wantErr      error
		wantBilling  bool
		wantDelivery bool
	}{
		{name: "billing slot", addressType: AddressTypeBilling, wantBilling: true},
		{name: "delivery slot", addressType: AddressTypeDelivery, wantDelivery: true},
		{name: "empty type fills both", addressType: "", wantBilling: true, wantDelivery: true},
		{name: "unknown type", addressType: "warehouse", wantErr: ErrInvalidAddressType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			customer := NewAnonymousCustomer()
			id := billing
			if tt.addressType == AddressTypeDelivery {
				id = delivery
			}

			err := customer.SetAddress(id, tt.addressType)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBilling, customer.BillingAddressID != nil)
			assert.Equal(t, tt.wantDelivery, customer.DeliveryAddressID != nil)
		})
	}
}

func TestCustomerSetAddressKeepsFilledSlots(t *testing.T) {
	t.Parallel()

	customer := NewAnonymousCustomer()
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, customer.SetAddress(first, AddressTypeBilling))
	require.NoError(t, customer.SetAddress(second, ""))

	// The untyped address must not displace the existing billing default.
	assert.Equal(t, first, *customer.BillingAddressID)
	assert.Equal(t, second, *customer.DeliveryAddressID)
}
