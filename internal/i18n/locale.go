// Package i18n implements the multilingual field overlay: request locale
// resolution and per-locale shadow-table values exposed as virtual
// attributes on their parent entities.
package i18n

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/text/language"

	"github.com/lindenshop/storefront-api/internal/config"
	"github.com/lindenshop/storefront-api/internal/domain"
)

// LangParam is the query parameter (and JSON body member) that overrides
// the negotiated locale for a single request.
const LangParam = "_lang"

type contextKey struct{}

var localeKey = contextKey{}

// Locales negotiates request locales against the configured supported set.
type Locales struct {
	def       language.Tag
	supported []language.Tag
	canonical []string
	matcher   language.Matcher
}

// NewLocales builds a locale negotiator from configuration. The default
// locale must be among the supported ones.
func NewLocales(cfg config.LocaleConfig) (*Locales, error) {
	def, err := language.Parse(cfg.Default)
	if err != nil {
		return nil, fmt.Errorf("%w: default locale %q", domain.ErrInvalidLocale, cfg.Default)
	}

	supported := make([]language.Tag, 0, len(cfg.Supported))
	canonical := make([]string, 0, len(cfg.Supported))
	defIncluded := false
	for _, raw := range cfg.Supported {
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: supported locale %q", domain.ErrInvalidLocale, raw)
		}
		if tag == def {
			defIncluded = true
		}
		supported = append(supported, tag)
		canonical = append(canonical, tag.String())
	}
	if !defIncluded {
		return nil, fmt.Errorf("%w: default %q not in supported set", domain.ErrInvalidLocale, cfg.Default)
	}

	return &Locales{
		def:       def,
		supported: supported,
		canonical: canonical,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Default returns the canonical default locale.
func (l *Locales) Default() string {
	return l.def.String()
}

// Supported returns the canonical supported locales.
func (l *Locales) Supported() []string {
	return l.canonical
}

// Normalize parses a caller-supplied locale and maps it onto the closest
// supported one. Returns ErrInvalidLocale for unparseable tags.
func (l *Locales) Normalize(raw string) (string, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLocale, raw)
	}
	_, idx, _ := l.matcher.Match(tag)
	return l.canonical[idx], nil
}

// Resolve determines the request locale: the _lang query parameter wins,
// then Accept-Language negotiation, then the configured default. A _lang
// member inside a JSON body is applied later by the handler that decodes
// the body, via WithLocale.
func (l *Locales) Resolve(r *http.Request) string {
	if raw := r.URL.Query().Get(LangParam); raw != "" {
		if locale, err := l.Normalize(raw); err == nil {
			return locale
		}
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			_, idx, conf := l.matcher.Match(tags...)
			if conf > language.No {
				return l.canonical[idx]
			}
		}
	}

	return l.def.String()
}

// WithLocale returns a copy of ctx carrying the given locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// LocaleFromContext retrieves the request locale stored in ctx.
// The fallback is returned when no locale has been resolved.
func LocaleFromContext(ctx context.Context, fallback string) string {
	if locale, ok := ctx.Value(localeKey).(string); ok && locale != "" {
		return locale
	}
	return fallback
}
