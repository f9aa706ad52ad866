package middleware

import (
	"net/http"

	"github.com/lindenshop/storefront-api/internal/i18n"
)

// LocaleMiddleware resolves the request locale (query parameter, then
// Accept-Language, then the configured default) and stores it in the
// context for the translation overlay.
func LocaleMiddleware(locales *i18n.Locales) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := locales.Resolve(r)
			ctx := i18n.WithLocale(r.Context(), locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
