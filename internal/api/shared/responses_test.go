package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/accounts/profiles", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	recorder := httptest.NewRecorder()

	RespondWithError(recorder, req, http.StatusNotFound, "User not found")

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "User not found", resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}

func TestRespondWithFieldErrors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/accounts/sessions", nil)
	recorder := httptest.NewRecorder()

	RespondWithFieldErrors(recorder, req, FieldErrors{
		"email":    "Invalid email address",
		"password": "Value is too short",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp FieldErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Invalid email address", resp.Errors["email"])
	assert.Equal(t, "Value is too short", resp.Errors["password"])
}

func TestRespondWithErrorAndLogHidesDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/accounts/profiles", nil)
	recorder := httptest.NewRecorder()

	RespondWithErrorAndLog(recorder, req, http.StatusInternalServerError,
		"Failed to load profile", assert.AnError)

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Failed to load profile")
	assert.NotContains(t, recorder.Body.String(), assert.AnError.Error())
}
