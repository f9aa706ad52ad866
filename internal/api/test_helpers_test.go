package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/config"
	"github.com/lindenshop/storefront-api/internal/i18n"
)

// testLocales builds a locale negotiator with English and German, matching
// the default shop configuration.
func testLocales(t *testing.T) *i18n.Locales {
	t.Helper()
	locales, err := i18n.NewLocales(config.LocaleConfig{
		Default:   "en",
		Supported: []string{"en", "de"},
	})
	require.NoError(t, err)
	return locales
}

// newJSONRequest builds a request with the payload marshaled as JSON body.
// A nil payload produces an empty body.
func newJSONRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withIdentity stores the identity in the request context, standing in for
// the authentication middleware.
func withIdentity(r *http.Request, identity shared.Identity) *http.Request {
	return r.WithContext(shared.WithIdentity(r.Context(), identity))
}

// withPathParam injects a chi URL parameter, standing in for the router.
func withPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeFieldErrors extracts the per-field messages from a validation
// error response body.
func decodeFieldErrors(t *testing.T, recorder *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp.Errors
}
