package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/i18n"
	"github.com/lindenshop/storefront-api/internal/service"
	"github.com/lindenshop/storefront-api/internal/service/auth"
	"github.com/lindenshop/storefront-api/internal/store"
)

// SessionHandler handles the sessions resource: registration, login,
// password reset and the session descriptor.
type SessionHandler struct {
	accountService service.AccountService
	locales        *i18n.Locales
}

// NewSessionHandler creates a new SessionHandler with the given dependencies.
func NewSessionHandler(accountService service.AccountService, locales *i18n.Locales) *SessionHandler {
	return &SessionHandler{
		accountService: accountService,
		locales:        locales,
	}
}

// Get handles GET /accounts/sessions. It describes the current session:
// the trace id, whether the caller is anonymous, the user id if any and
// the resolved locale.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	resp := SessionResponse{
		ID:          shared.GetTraceID(r.Context()),
		IsAnonymous: !identity.IsAuthenticated(),
		Locale:      i18n.LocaleFromContext(r.Context(), h.locales.Default()),
	}
	if identity.IsAuthenticated() {
		uid := identity.UserID
		resp.UID = &uid
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /accounts/sessions: registration. The password is
// optional; when absent a random one is generated so the account can only
// be entered after a password reset.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	password := req.Password
	if password == "" {
		generated, err := randomPassword()
		if err != nil {
			slog.Error("failed to generate password", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create account")
			return
		}
		password = generated
	}

	user, pair, err := h.accountService.Register(r.Context(), req.Email, password)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithFieldErrors(w, r,
				shared.NewFieldError("email", "This email is already taken"))
			return
		}
		HandleAPIError(w, r, err, "Failed to create account")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:    user.ID,
		TokenPair: pair,
	})
}

// Update handles PUT /accounts/sessions/{id}. The body shape decides the
// action, checked in order: password reset completion, reset initiation,
// then login.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SessionUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	r = applyBodyLocale(r, h.locales, req.Lang)

	switch {
	case req.Token != "" && req.Password != "":
		h.completePasswordReset(w, r, req)
	case req.Reset && req.Email != "":
		h.initiatePasswordReset(w, r, req)
	case req.Email != "" && req.Password != "":
		h.login(w, r, req)
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session update")
	}
}

func (h *SessionHandler) completePasswordReset(w http.ResponseWriter, r *http.Request, req SessionUpdateRequest) {
	if req.Password != req.ConfirmPassword {
		shared.RespondWithFieldErrors(w, r,
			shared.NewFieldError("confirm_password", "Passwords do not match"))
		return
	}

	err := h.accountService.CompletePasswordReset(r.Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidResetToken):
			shared.RespondWithFieldErrors(w, r,
				shared.NewFieldError("token", "Invalid or expired reset token"))
		case errors.Is(err, service.ErrPasswordTooShort):
			shared.RespondWithFieldErrors(w, r,
				shared.NewFieldError("password", "Passwords should be more than 6 symbols length"))
		default:
			HandleAPIError(w, r, err, "Failed to reset password")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, map[string]bool{"reset": true})
}

func (h *SessionHandler) initiatePasswordReset(w http.ResponseWriter, r *http.Request, req SessionUpdateRequest) {
	err := h.accountService.InitiatePasswordReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		HandleAPIError(w, r, err, "Failed to initiate password reset")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, map[string]bool{"reset": true})
}

func (h *SessionHandler) login(w http.ResponseWriter, r *http.Request, req SessionUpdateRequest) {
	identity := identityFromRequest(r)

	user, pair, err := h.accountService.Authenticate(r.Context(), req.Email, req.Password, identity.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			shared.RespondWithFieldErrors(w, r,
				shared.NewFieldError("email", "Invalid email or password"))
		case errors.Is(err, service.ErrAccountInactive):
			shared.RespondWithFieldErrors(w, r,
				shared.NewFieldError("email", "Account is blocked"))
		default:
			HandleAPIError(w, r, err, "Failed to authenticate")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:    user.ID,
		TokenPair: pair,
	})
}

// Delete handles DELETE /accounts/sessions/{id}: logout. The server keeps
// no session state, so there is nothing to drop beyond answering.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Refresh handles POST /accounts/sessions/refresh, exchanging a valid
// refresh token for a fresh token pair.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.accountService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to refresh tokens")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pair)
}

// randomPassword generates a throwaway password for accounts registered
// without one.
func randomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
