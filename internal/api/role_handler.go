package api

import (
	"net/http"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/service"
)

// RoleHandler handles the roles resource. Reading requires login; writing
// requires admin. Roles are never deleted, only unlinked from users.
type RoleHandler struct {
	roleService service.RoleService
	locales     *i18n.Locales
}

// NewRoleHandler creates a new RoleHandler with the given dependencies.
func NewRoleHandler(roleService service.RoleService, locales *i18n.Locales) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		locales:     locales,
	}
}

// List handles GET /accounts/roles.
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.ListRoles(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list roles")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, roles)
}

// Get handles GET /accounts/roles/{id}.
func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	roleID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	role, err := h.roleService.GetRole(r.Context(), roleID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load role")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, role)
}

// Create handles POST /accounts/roles. Admin only.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	role, err := h.roleService.CreateRole(r.Context(), req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create role")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, role)
}

// Update handles PUT /accounts/roles/{id}. Admin only.
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	roleID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req RoleUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	role, err := h.roleService.UpdateRole(r.Context(), roleID, service.RoleParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update role")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, role)
}

// Delete handles DELETE /accounts/roles/{id}. Roles are never removed.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Roles cannot be deleted")
}
