package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/store"
)

// AddressHandler handles the addresses resource. Addresses always belong
// to a customer, so the caller needs either a logged-in user with a
// customer or a guest token.
type AddressHandler struct {
	customerService service.CustomerService
	addressStore    store.AddressStore
	locales         *i18n.Locales
}

// NewAddressHandler creates a new AddressHandler with the given dependencies.
func NewAddressHandler(
	customerService service.CustomerService,
	addressStore store.AddressStore,
	locales *i18n.Locales,
) *AddressHandler {
	return &AddressHandler{
		customerService: customerService,
		addressStore:    addressStore,
		locales:         locales,
	}
}

// Create handles POST /accounts/addresses. The new address attaches to the
// caller's customer and fills the matching default address slot.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	customer, err := h.callerCustomer(r)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create address")
		return
	}
	if customer == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Customer profile required")
		return
	}

	address, err := domain.NewAddress(customer.ID, req.Type)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	applyAddressRequest(address, req)
	if err := address.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.customerService.CreateAddress(r.Context(), customer.ID, address); err != nil {
		HandleAPIError(w, r, err, "Failed to create address")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, address)
}

// List handles GET /accounts/addresses. Admins see every address; other
// callers only those of their own customer.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	if identity.Admin {
		limit, offset := listParams(r)
		addresses, err := h.addressStore.List(r.Context(), limit, offset)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to list addresses")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, addresses)
		return
	}

	customer, err := h.callerCustomer(r)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list addresses")
		return
	}
	if customer == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, []*domain.Address{})
		return
	}

	addresses, err := h.addressStore.ListByCustomer(r.Context(), customer.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list addresses")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, addresses)
}

// Get handles GET /accounts/addresses/{id} with an ownership check.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, ok := h.ownedAddress(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, address)
}

// Update handles PUT /accounts/addresses/{id}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	address, ok := h.ownedAddress(w, r)
	if !ok {
		return
	}

	var req AddressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	if req.Type != "" {
		address.Type = req.Type
	}
	applyAddressRequest(address, req)
	if err := address.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	address.UpdatedAt = time.Now().UTC()

	if err := h.addressStore.Update(r.Context(), address); err != nil {
		HandleAPIError(w, r, err, "Failed to update address")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, address)
}

// Delete handles DELETE /accounts/addresses/{id}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	address, ok := h.ownedAddress(w, r)
	if !ok {
		return
	}

	if err := h.addressStore.Delete(r.Context(), address.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete address")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedAddress loads the address from the path and enforces that the
// caller owns it or is an admin. It writes the error response itself.
func (h *AddressHandler) ownedAddress(w http.ResponseWriter, r *http.Request) (*domain.Address, bool) {
	addressID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	address, err := h.addressStore.GetByID(r.Context(), addressID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load address")
		return nil, false
	}

	identity := identityFromRequest(r)
	if identity.Admin {
		return address, true
	}

	customer, err := h.callerCustomer(r)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load address")
		return nil, false
	}
	if customer == nil || customer.ID != address.CustomerID {
		shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return address, true
}

// callerCustomer resolves the customer behind the caller's identity.
// Returns nil without error when the caller has no customer.
func (h *AddressHandler) callerCustomer(r *http.Request) (*domain.Customer, error) {
	identity := identityFromRequest(r)

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

// applyAddressRequest copies the body fields onto the address. The type
// is handled by the caller since creation and update treat it differently.
func applyAddressRequest(address *domain.Address, req AddressRequest) {
	address.CountryID = req.CountryID
	address.City = req.City
	address.Street = req.Street
	address.Apartment = req.Apartment
	address.ZipCode = req.ZipCode
	address.FirstName = req.FirstName
	address.LastName = req.LastName
	address.Company = req.Company
	address.Gender = req.Gender
	address.Phone = req.Phone
}
