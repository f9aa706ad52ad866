package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/i18n"
)

// identityFromRequest extracts the caller identity placed in the context
// by the authentication middleware. A missing identity reads as anonymous.
func identityFromRequest(r *http.Request) shared.Identity {
	return shared.IdentityFromContext(r.Context())
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// applyBodyLocale overrides the context locale with a "_lang" member from
// the request body. The query parameter still wins, matching the locale
// resolution order.
func applyBodyLocale(r *http.Request, locales *i18n.Locales, lang string) *http.Request {
	if lang == "" || r.URL.Query().Get(i18n.LangParam) != "" {
		return r
	}
	normalized, err := locales.Normalize(lang)
	if err != nil {
		return r
	}
	return r.WithContext(i18n.WithLocale(r.Context(), normalized))
}

// decodeAndValidate decodes the JSON body into req and runs struct
// validation, writing the error response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.Validate.Struct(req); err != nil {
		if fields := shared.FieldErrorsFromValidator(err); fields != nil {
			shared.RespondWithFieldErrors(w, r, fields)
			return false
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return false
	}
	return true
}

// listParams reads limit/offset query parameters. The limit defaults to 50
// and is capped at 200.
func listParams(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := parsePositiveInt(raw); err == nil && n <= 200 {
			limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := parsePositiveInt(raw); err == nil {
			offset = n
		}
	}
	return limit, offset
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, domain.ErrValidation
		}
		n = n*10 + int(c-'0')
		if n > 1<<20 {
			return 0, domain.ErrValidation
		}
	}
	return n, nil
}
