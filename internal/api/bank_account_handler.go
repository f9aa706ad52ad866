package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/store"
)

// BankAccountHandler handles the bank_accounts resource. Every route
// requires a logged-in user; items are visible to their owner and admins.
type BankAccountHandler struct {
	bankAccountStore store.BankAccountStore
}

// NewBankAccountHandler creates a new BankAccountHandler with the given
// dependencies.
func NewBankAccountHandler(bankAccountStore store.BankAccountStore) *BankAccountHandler {
	return &BankAccountHandler{bankAccountStore: bankAccountStore}
}

// Create handles POST /accounts/bank_accounts. The account is always owned
// by the current user.
func (h *BankAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BankAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	identity := identityFromRequest(r)

	account, err := domain.NewBankAccount(identity.UserID, req.BankName, req.IBAN, req.SWIFT)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.bankAccountStore.Create(r.Context(), account); err != nil {
		HandleAPIError(w, r, err, "Failed to create bank account")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, account)
}

// List handles GET /accounts/bank_accounts. Admins may pass a user_id
// query parameter to list another user's accounts.
func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	userID := identity.UserID
	if identity.Admin {
		if raw := r.URL.Query().Get("user_id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user_id")
				return
			}
			userID = parsed
		}
	}

	accounts, err := h.bankAccountStore.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list bank accounts")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, accounts)
}

// Get handles GET /accounts/bank_accounts/{id}.
func (h *BankAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, account)
}

// Update handles PUT /accounts/bank_accounts/{id}.
func (h *BankAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}

	var req BankAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account.BankName = req.BankName
	account.IBAN = req.IBAN
	account.SWIFT = req.SWIFT

	if err := h.bankAccountStore.Update(r.Context(), account); err != nil {
		HandleAPIError(w, r, err, "Failed to update bank account")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, account)
}

// Delete handles DELETE /accounts/bank_accounts/{id}.
func (h *BankAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}

	if err := h.bankAccountStore.Delete(r.Context(), account.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete bank account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedAccount loads the account from the path and enforces ownership.
// Non-owners get 401 rather than 404, matching the resource's contract.
func (h *BankAccountHandler) ownedAccount(w http.ResponseWriter, r *http.Request) (*domain.BankAccount, bool) {
	accountID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	account, err := h.bankAccountStore.GetByID(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load bank account")
		return nil, false
	}

	identity := identityFromRequest(r)
	if !identity.Admin && !account.CheckOwner(identity.UserID) {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access denied")
		return nil, false
	}
	return account, true
}
