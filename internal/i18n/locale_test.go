package i18n

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindenshop/storefront-api/internal/config"
	"github.com/lindenshop/storefront-api/internal/domain"
)

func newTestLocales(t *testing.T) *Locales {
	t.Helper()
	locales, err := NewLocales(config.LocaleConfig{
		Default:   "en",
		Supported: []string{"en", "de", "fr"},
	})
	require.NoError(t, err)
	return locales
}

func TestNewLocales(t *testing.T) {
	t.Parallel()

	_, err := NewLocales(config.LocaleConfig{Default: "xx-not-a-tag!", Supported: []string{"en"}})
	assert.ErrorIs(t, err, domain.ErrInvalidLocale)

	_, err = NewLocales(config.LocaleConfig{Default: "de", Supported: []string{"en", "fr"}})
	assert.ErrorIs(t, err, domain.ErrInvalidLocale)

	locales := newTestLocales(t)
	assert.Equal(t, "en", locales.Default())
	assert.Equal(t, []string{"en", "de", "fr"}, locales.Supported())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	locales := newTestLocales(t)

	tests := []struct {
		name           string
		url            string
		acceptLanguage string
		want           string
	}{
		{name: "no preference", url: "/accounts/customers/", want: "en"},
		{name: "query param", url: "/accounts/customers/?_lang=de", want: "de"},
		{name: "query param beats header", url: "/accounts/customers/?_lang=fr", acceptLanguage: "de", want: "fr"},
		{name: "unknown query param ignored", url: "/accounts/customers/?_lang=!!", acceptLanguage: "de", want: "de"},
		{name: "accept-language", url: "/accounts/customers/", acceptLanguage: "de-AT, de;q=0.9", want: "de"},
		{name: "accept-language quality order", url: "/accounts/customers/", acceptLanguage: "da, fr;q=0.8, en;q=0.5", want: "fr"},
		{name: "unsupported header falls back", url: "/accounts/customers/", acceptLanguage: "zz-; broken", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", tt.url, nil)
			if tt.acceptLanguage != "" {
				r.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			assert.Equal(t, tt.want, locales.Resolve(r))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	locales := newTestLocales(t)

	got, err := locales.Normalize("de-CH")
	require.NoError(t, err)
	assert.Equal(t, "de", got)

	_, err = locales.Normalize("not a tag")
	assert.ErrorIs(t, err, domain.ErrInvalidLocale)
}

func TestLocaleContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, "en", LocaleFromContext(ctx, "en"))

	ctx = WithLocale(ctx, "de")
	assert.Equal(t, "de", LocaleFromContext(ctx, "en"))
}
