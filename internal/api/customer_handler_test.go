package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/mocks"
	"github.com/lindenshop/storefront-api/internal/service"
)

// customerPayload builds a valid customer body with the required members
// filled in, merged with any extra members.
func customerPayload(extra map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{
		"first_name": "Jo",
		"last_name":  "Doe",
		"email":      "shopper@example.com",
		"gender":     "female",
	}
	for k, v := range extra {
		payload[k] = v
	}
	return payload
}

func TestCustomerCreate(t *testing.T) {
	t.Parallel()

	t.Run("anonymous caller gets a guest token", func(t *testing.T) {
		t.Parallel()

		customer := domain.NewAnonymousCustomer()
		customerService := &MockCustomerService{Customer: customer, Created: true}
		jwtService := &mocks.MockJWTService{Token: "guest-token"}
		handler := NewCustomerHandler(customerService, jwtService, testLocales(t))

		req := newJSONRequest(t, "POST", "/accounts/customers", customerPayload(nil))
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var resp struct {
			GuestToken string `json:"guest_token"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "guest-token", resp.GuestToken)
	})

	t.Run("guest caller keeps its token", func(t *testing.T) {
		t.Parallel()

		customer := domain.NewAnonymousCustomer()
		customerService := &MockCustomerService{Customer: customer}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withIdentity(
			newJSONRequest(t, "POST", "/accounts/customers", customerPayload(nil)),
			shared.Identity{CustomerID: customer.ID},
		)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var resp struct {
			GuestToken string `json:"guest_token"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Empty(t, resp.GuestToken)
	})

	t.Run("stale guest token gets a fresh one", func(t *testing.T) {
		t.Parallel()

		fresh := domain.NewAnonymousCustomer()
		customerService := &MockCustomerService{
			EnsureCustomerFn: func(ctx context.Context, uid, guestID uuid.UUID, params service.CustomerParams) (*domain.Customer, bool, error) {
				return fresh, true, nil
			},
		}
		jwtService := &mocks.MockJWTService{Token: "fresh-guest-token"}
		handler := NewCustomerHandler(customerService, jwtService, testLocales(t))

		req := withIdentity(
			newJSONRequest(t, "POST", "/accounts/customers", customerPayload(nil)),
			shared.Identity{CustomerID: uuid.New()},
		)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var resp struct {
			GuestToken string `json:"guest_token"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "fresh-guest-token", resp.GuestToken)
	})

	t.Run("authenticated caller passes its user", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		customer := domain.NewCustomer(userID)

		var gotUserID uuid.UUID
		customerService := &MockCustomerService{
			EnsureCustomerFn: func(ctx context.Context, uid, guestID uuid.UUID, params service.CustomerParams) (*domain.Customer, bool, error) {
				gotUserID = uid
				return customer, true, nil
			},
		}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withIdentity(
			newJSONRequest(t, "POST", "/accounts/customers", customerPayload(nil)),
			shared.Identity{UserID: userID},
		)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("empty body fails validation", func(t *testing.T) {
		t.Parallel()

		customerService := &MockCustomerService{}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := newJSONRequest(t, "POST", "/accounts/customers", map[string]interface{}{})
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		require.Equal(t, http.StatusBadRequest, recorder.Code)

		fields := decodeFieldErrors(t, recorder)
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "last_name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "gender")
	})
}

func TestCustomerList(t *testing.T) {
	t.Parallel()

	t.Run("admin sees all customers", func(t *testing.T) {
		t.Parallel()

		customers := []*domain.Customer{domain.NewAnonymousCustomer(), domain.NewAnonymousCustomer()}
		customerService := &MockCustomerService{Customers: customers}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withIdentity(
			httptest.NewRequest("GET", "/accounts/customers", nil),
			shared.Identity{UserID: uuid.New(), Admin: true},
		)
		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp []json.RawMessage
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Len(t, resp, 2)
	})

	t.Run("user sees only their customer", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		customer := domain.NewCustomer(userID)
		customerService := &MockCustomerService{Customer: customer}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withIdentity(
			httptest.NewRequest("GET", "/accounts/customers", nil),
			shared.Identity{UserID: userID},
		)
		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp []json.RawMessage
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Len(t, resp, 1)
	})

	t.Run("user without a customer gets an empty list", func(t *testing.T) {
		t.Parallel()

		customerService := &MockCustomerService{}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withIdentity(
			httptest.NewRequest("GET", "/accounts/customers", nil),
			shared.Identity{UserID: uuid.New()},
		)
		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp []json.RawMessage
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Empty(t, resp)
	})
}

func TestCustomerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("owner update is accepted", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		customer := domain.NewCustomer(userID)
		customerService := &MockCustomerService{Customer: customer}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withPathParam(
			withIdentity(
				newJSONRequest(t, "PUT", "/accounts/customers/"+customer.ID.String(), customerPayload(map[string]interface{}{
					"notes": "wholesale buyer",
				})),
				shared.Identity{UserID: userID},
			),
			"id", customer.ID.String(),
		)
		recorder := httptest.NewRecorder()
		handler.Update(recorder, req)

		assert.Equal(t, http.StatusAccepted, recorder.Code)
	})

	t.Run("non-owner update is forbidden", func(t *testing.T) {
		t.Parallel()

		customer := domain.NewCustomer(uuid.New())
		customerService := &MockCustomerService{Customer: customer}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withPathParam(
			withIdentity(
				newJSONRequest(t, "PUT", "/accounts/customers/"+customer.ID.String(), customerPayload(map[string]interface{}{
					"notes": "hijacked",
				})),
				shared.Identity{UserID: uuid.New()},
			),
			"id", customer.ID.String(),
		)
		recorder := httptest.NewRecorder()
		handler.Update(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("guest updates its own anonymous customer", func(t *testing.T) {
		t.Parallel()

		customer := domain.NewAnonymousCustomer()
		customerService := &MockCustomerService{Customer: customer}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withPathParam(
			withIdentity(
				newJSONRequest(t, "PUT", "/accounts/customers/"+customer.ID.String(), customerPayload(nil)),
				shared.Identity{CustomerID: customer.ID},
			),
			"id", customer.ID.String(),
		)
		recorder := httptest.NewRecorder()
		handler.Update(recorder, req)

		assert.Equal(t, http.StatusAccepted, recorder.Code)
	})
}

func TestCustomerDelete(t *testing.T) {
	t.Parallel()

	customer := domain.NewAnonymousCustomer()

	t.Run("admin may delete", func(t *testing.T) {
		t.Parallel()

		customerService := &MockCustomerService{Customer: customer}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withPathParam(
			withIdentity(
				httptest.NewRequest("DELETE", "/accounts/customers/"+customer.ID.String(), nil),
				shared.Identity{UserID: uuid.New(), Admin: true},
			),
			"id", customer.ID.String(),
		)
		recorder := httptest.NewRecorder()
		handler.Delete(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("non-admin may not delete", func(t *testing.T) {
		t.Parallel()

		customerService := &MockCustomerService{Customer: customer}
		handler := NewCustomerHandler(customerService, &mocks.MockJWTService{}, testLocales(t))

		req := withPathParam(
			withIdentity(
				httptest.NewRequest("DELETE", "/accounts/customers/"+customer.ID.String(), nil),
				shared.Identity{UserID: uuid.New()},
			),
			"id", customer.ID.String(),
		)
		recorder := httptest.NewRecorder()
		handler.Delete(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
