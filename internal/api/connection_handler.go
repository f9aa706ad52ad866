package api

import (
	"net/http"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/store"
)

// ConnectionHandler exposes the caller's social login connections.
// The rows are written by the OAuth callback outside this service, so the
// resource is read-only.
type ConnectionHandler struct {
	connectionStore store.SocialConnectionStore
}

// NewConnectionHandler creates a new ConnectionHandler with the given
// dependencies.
func NewConnectionHandler(connectionStore store.SocialConnectionStore) *ConnectionHandler {
	return &ConnectionHandler{connectionStore: connectionStore}
}

// List handles GET /accounts/connections.
func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	connections, err := h.connectionStore.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list connections")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, connections)
}
