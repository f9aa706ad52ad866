package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
)

func TestSerializeProfileEmailVisibility(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.Roles = []domain.Role{{Name: "admin"}}

	tests := []struct {
		name      string
		viewer    shared.Identity
		wantEmail bool
	}{
		{
			name:      "owner sees email",
			viewer:    shared.Identity{UserID: user.ID},
			wantEmail: true,
		},
		{
			name:      "admin sees email",
			viewer:    shared.Identity{UserID: uuid.New(), Admin: true},
			wantEmail: true,
		},
		{
			name:      "other user does not see email",
			viewer:    shared.Identity{UserID: uuid.New()},
			wantEmail: false,
		},
		{
			name:      "anonymous viewer does not see email",
			viewer:    shared.Identity{},
			wantEmail: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := serializeProfile(user, nil, nil, nil, tt.viewer)

			if tt.wantEmail {
				assert.Equal(t, user.Email, out["email"])
			} else {
				assert.NotContains(t, out, "email")
			}
			assert.Equal(t, []string{"admin"}, out["roles"])
			assert.NotContains(t, out, "password")
			assert.NotContains(t, out, "hashed_password")
		})
	}
}

func TestSerializeProfileFlattensAddresses(t *testing.T) {
	t.Parallel()

	user := testUser()
	customer := domain.NewCustomer(user.ID)
	customer.Notes = "prefers invoices"

	billing := testAddress(customer.ID)
	delivery := testAddress(customer.ID)
	delivery.Type = domain.AddressTypeDelivery
	delivery.City = "Hamburg"

	out := serializeProfile(user, customer, billing, delivery, shared.Identity{UserID: user.ID})

	assert.Equal(t, customer.ID, out["customer_id"])
	assert.Equal(t, "prefers invoices", out["notes"])
	assert.Equal(t, billing.ID, out["billing_address_id"])
	assert.Equal(t, "Berlin", out["billing_city"])
	assert.Equal(t, "Hamburg", out["delivery_city"])
	assert.Equal(t, "10117", out["billing_zip_code"])
}

func TestSerializeProfileEmptyFieldsAsNull(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.Phone = ""
	user.Company = "Linden GmbH"

	out := serializeProfile(user, nil, nil, nil, shared.Identity{UserID: user.ID})

	require.Contains(t, out, "phone")
	assert.Nil(t, out["phone"])
	assert.Equal(t, "Linden GmbH", out["company"])
}
