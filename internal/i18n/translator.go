package i18n

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/platform/logger"
	"github.com/lindenshop/storefront-api/internal/store"
)

// Translator resolves localized virtual attributes against their shadow
// tables. Reads fill the entity field for the request locale; writes upsert
// the (parent, locale) row. A missing translation reads as the empty string.
type Translator struct {
	translations store.TranslationStore
	locales      *Locales
	logger       *slog.Logger
}

// NewTranslator creates a Translator. If logger is nil, a default is used.
func NewTranslator(translations store.TranslationStore, locales *Locales, log *slog.Logger) *Translator {
	if log == nil {
		log = slog.Default()
	}
	return &Translator{
		translations: translations,
		locales:      locales,
		logger:       log.With(slog.String("component", "translator")),
	}
}

// WithTx returns a Translator bound to the provided transaction.
func (t *Translator) WithTx(tx *sql.Tx) *Translator {
	return &Translator{
		translations: t.translations.WithTx(tx),
		locales:      t.locales,
		logger:       t.logger,
	}
}

// Locale returns the locale in effect for ctx.
func (t *Translator) Locale(ctx context.Context) string {
	return LocaleFromContext(ctx, t.locales.Default())
}

// LoadCustomerNotes fills customer.Notes with the translation for the
// request locale.
func (t *Translator) LoadCustomerNotes(ctx context.Context, customer *domain.Customer) error {
	value, err := t.load(ctx, store.TranslatedCustomerNotes, customer.ID)
	if err != nil {
		return err
	}
	customer.Notes = value
	return nil
}

// SaveCustomerNotes upserts customer.Notes under the request locale.
func (t *Translator) SaveCustomerNotes(ctx context.Context, customer *domain.Customer) error {
	return t.translations.Upsert(
		ctx, store.TranslatedCustomerNotes, customer.ID, t.Locale(ctx), customer.Notes)
}

// LoadRoleDescription fills role.Description with the translation for the
// request locale.
func (t *Translator) LoadRoleDescription(ctx context.Context, role *domain.Role) error {
	value, err := t.load(ctx, store.TranslatedRoleDescription, role.ID)
	if err != nil {
		return err
	}
	role.Description = value
	return nil
}

// SaveRoleDescription upserts role.Description under the request locale.
func (t *Translator) SaveRoleDescription(ctx context.Context, role *domain.Role) error {
	return t.translations.Upsert(
		ctx, store.TranslatedRoleDescription, role.ID, t.Locale(ctx), role.Description)
}

func (t *Translator) load(ctx context.Context, field store.TranslatedField, parentID uuid.UUID) (string, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)
	locale := t.Locale(ctx)

	value, err := t.translations.Get(ctx, field, parentID, locale)
	if err != nil {
		if store.IsNotFoundError(err) {
			return "", nil
		}
		log.Error("failed to load translation",
			slog.String("error", err.Error()),
			slog.Int("field", int(field)),
			slog.String("parent_id", parentID.String()),
			slog.String("locale", locale))
		return "", err
	}
	return value, nil
}
