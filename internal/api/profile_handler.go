package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// ProfileHandler handles the profiles resource.
type ProfileHandler struct {
	userService   service.UserService
	customerStore store.CustomerStore
	addressStore  store.AddressStore
	jwtService    auth.JWTService
	locales       *i18n.Locales
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(
	userService service.UserService,
	customerStore store.CustomerStore,
	addressStore store.AddressStore,
	jwtService auth.JWTService,
	locales *i18n.Locales,
) *ProfileHandler {
	return &ProfileHandler{
		userService:   userService,
		customerStore: customerStore,
		addressStore:  addressStore,
		jwtService:    jwtService,
		locales:       locales,
	}
}

// List handles GET /accounts/profiles. Admins get the full list with
// first_name/last_name/email substring filters; everyone else only sees
// their own profile.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	if !identity.Admin {
		user, err := h.userService.GetUser(r.Context(), identity.UserID)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to load profile")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, []map[string]interface{}{
			serializeProfile(user, nil, nil, nil, identity),
		})
		return
	}

	limit, offset := listParams(r)
	filter := store.UserFilter{
		FirstName: r.URL.Query().Get("first_name"),
		LastName:  r.URL.Query().Get("last_name"),
		Email:     r.URL.Query().Get("email"),
		Limit:     limit,
		Offset:    offset,
	}

	users, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list profiles")
		return
	}

	out := make([]map[string]interface{}, 0, len(users))
	for _, user := range users {
		out = append(out, serializeProfile(user, nil, nil, nil, identity))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Get handles GET /accounts/profiles/{id}. Access requires the owner or an
// admin; alternatively a confirmation token from the signup email grants
// access and marks the address confirmed.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	identity := identityFromRequest(r)

	if token := r.URL.Query().Get("token"); token != "" && identity.UserID != userID && !identity.Admin {
		h.confirmEmail(w, r, userID, token)
		return
	}

	if identity.UserID != userID && !identity.Admin {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load profile")
		return
	}

	h.respondProfile(w, r, user, identity, http.StatusOK)
}

// confirmEmail resolves the email confirmation flow: a token from the
// signup email in place of authentication. The token must belong to the
// requested profile.
func (h *ProfileHandler) confirmEmail(w http.ResponseWriter, r *http.Request, userID uuid.UUID, token string) {
	claims, err := h.jwtService.ValidateToken(r.Context(), token)
	if err != nil || claims.UserID != userID {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.userService.ConfirmEmail(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to confirm email")
		return
	}

	h.respondProfile(w, r, user, shared.Identity{UserID: userID}, http.StatusOK)
}

// Update handles PUT /accounts/profiles/{id}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	identity := identityFromRequest(r)
	if identity.UserID != userID && !identity.Admin {
		shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		return
	}

	var req ProfileUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	params := service.ProfileParams{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Fax:             req.Fax,
		Company:         req.Company,
		Gender:          req.Gender,
		BirthDate:       req.BirthDate,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		RoleID:          req.RoleID,
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, params, identity.Admin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			shared.RespondWithFieldErrors(w, r,
				shared.NewFieldError("password", "Passwords should be more than 6 symbols length"))
		case errors.Is(err, service.ErrPasswordMismatch):
			shared.RespondWithFieldErrors(w, r,
				shared.NewFieldError("confirmation", "Passwords do not match"))
		default:
			HandleAPIError(w, r, err, "Failed to update profile")
		}
		return
	}

	h.respondProfile(w, r, user, identity, http.StatusAccepted)
}

// Create handles POST /accounts/profiles. Profiles are created through
// registration, never directly.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Registration happens via sessions")
}

// Delete handles DELETE /accounts/profiles/{id}. Admin only.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondProfile loads the user's customer and default addresses and writes
// the flattened profile payload.
func (h *ProfileHandler) respondProfile(
	w http.ResponseWriter,
	r *http.Request,
	user *domain.User,
	viewer shared.Identity,
	status int,
) {
	var customer *domain.Customer
	var billing, delivery *domain.Address

	found, err := h.customerStore.GetByUserID(r.Context(), user.ID)
	if err != nil && !errors.Is(err, store.ErrCustomerNotFound) {
		HandleAPIError(w, r, err, "Failed to load profile")
		return
	}
	if err == nil {
		customer = found
		billing = h.loadAddress(r, customer.BillingAddressID)
		delivery = h.loadAddress(r, customer.DeliveryAddressID)
	}

	shared.RespondWithJSON(w, r, status, serializeProfile(user, customer, billing, delivery, viewer))
}

// loadAddress fetches a default address slot. A dangling slot reads as no
// address rather than failing the whole profile.
func (h *ProfileHandler) loadAddress(r *http.Request, id *uuid.UUID) *domain.Address {
	if id == nil {
		return nil
	}
	addr, err := h.addressStore.GetByID(r.Context(), *id)
	if err != nil {
		return nil
	}
	return addr
}
