package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// CustomerHandler handles the customers resource. Customers can be created
// by fully anonymous callers, who get a guest token binding them to the new
// customer.
type CustomerHandler struct {
	customerService service.CustomerService
	jwtService      auth.JWTService
	locales         *i18n.Locales
}

// NewCustomerHandler creates a new CustomerHandler with the given dependencies.
func NewCustomerHandler(
	customerService service.CustomerService,
	jwtService auth.JWTService,
	locales *i18n.Locales,
) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		jwtService:      jwtService,
		locales:         locales,
	}
}

// Create handles POST /accounts/customers: create-or-update the caller's
// customer. A caller without any identity gets a fresh anonymous customer
// and a guest token to keep hold of it.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	identity := identityFromRequest(r)

	customer, created, err := h.customerService.EnsureCustomer(
		r.Context(), identity.UserID, identity.CustomerID, customerParams(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save customer")
		return
	}

	// A fresh anonymous customer needs a guest token, including when a
	// stale guest token referenced a customer that no longer exists.
	resp := CustomerResponse{Customer: customer}
	if created && customer.IsAnonymous() && customer.ID != identity.CustomerID {
		token, err := h.jwtService.GenerateGuestToken(r.Context(), customer.ID)
		if err != nil {
			slog.Error("failed to generate guest token",
				"error", err,
				"customer_id", customer.ID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to save customer")
			return
		}
		resp.GuestToken = token
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// List handles GET /accounts/customers. Admins see everyone; other callers
// only their own customer.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	if identity.Admin {
		limit, offset := listParams(r)
		customers, err := h.customerService.ListCustomers(r.Context(), limit, offset)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to list customers")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, customers)
		return
	}

	customer, err := h.ownCustomer(r, identity)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load customer")
		return
	}
	if customer == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, []*domain.Customer{})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, []*domain.Customer{customer})
}

// Get handles GET /accounts/customers/{id} with an ownership check.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), customerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load customer")
		return
	}

	if !canAccessCustomer(identityFromRequest(r), customer) {
		shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, customer)
}

// Update handles PUT /accounts/customers/{id}; owner or admin.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	customer, err := h.customerService.GetCustomer(r.Context(), customerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load customer")
		return
	}
	if !canAccessCustomer(identityFromRequest(r), customer) {
		shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		return
	}

	updated, err := h.customerService.UpdateCustomer(r.Context(), customerID, customerParams(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update customer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, updated)
}

// Delete handles DELETE /accounts/customers/{id}. Admin only.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)
	if !identity.Admin {
		shared.RespondWithError(w, r, http.StatusForbidden, "Admin access required")
		return
	}

	customerID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), customerID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete customer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownCustomer resolves the caller's customer: by user for authenticated
// callers, by guest token otherwise. Returns nil when the caller has none.
func (h *CustomerHandler) ownCustomer(r *http.Request, identity shared.Identity) (*domain.Customer, error) {
	var customer *domain.Customer
	var err error

	switch {
	case identity.IsAuthenticated():
		customer, err = h.customerService.GetOwnCustomer(r.Context(), identity.UserID)
	case identity.IsGuest():
		customer, err = h.customerService.GetCustomer(r.Context(), identity.CustomerID)
	default:
		return nil, nil
	}

	if errors.Is(err, store.ErrCustomerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// canAccessCustomer reports whether the identity may read or modify the
// customer: admins always, users their own customer, guests the anonymous
// customer their token is bound to.
func canAccessCustomer(identity shared.Identity, customer *domain.Customer) bool {
	if identity.Admin {
		return true
	}
	if identity.IsAuthenticated() && customer.UserID != nil && *customer.UserID == identity.UserID {
		return true
	}
	if identity.IsGuest() && customer.IsAnonymous() && customer.ID == identity.CustomerID {
		return true
	}
	return false
}

// customerParams maps the request body onto service params.
func customerParams(req CustomerRequest) service.CustomerParams {
	return service.CustomerParams{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Fax:           req.Fax,
		Company:       req.Company,
		Gender:        req.Gender,
		BirthDate:     req.BirthDate,
		Notes:         req.Notes,
		DirectDebit:   req.DirectDebit,
		Swift:         req.Swift,
		AccountNumber: req.AccountNumber,
		BLZ:           req.BLZ,
	}
}
