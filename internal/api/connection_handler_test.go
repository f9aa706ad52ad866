package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/mocks"
)

func TestConnectionList(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	connections := []*domain.SocialConnection{
		{
			ID:             uuid.New(),
			UserID:         userID,
			Provider:       "facebook",
			ProviderUserID: "fb-12345",
			DisplayName:    "Jo Doe",
			CreatedAt:      time.Now().UTC(),
		},
	}

	handler := NewConnectionHandler(&mocks.MockSocialConnectionStore{Connections: connections})

	req := withIdentity(
		httptest.NewRequest("GET", "/accounts/connections", nil),
		shared.Identity{UserID: userID},
	)
	recorder := httptest.NewRecorder()
	handler.List(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []domain.SocialConnection
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "facebook", resp[0].Provider)
}
