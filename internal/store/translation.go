package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// TranslatedField identifies a localized column on a parent entity. Each
// field maps to a shadow table holding one row per (parent, locale).
type TranslatedField int

const (
	// TranslatedCustomerNotes is the customers.notes overlay,
	// stored in customer_translations.
	TranslatedCustomerNotes TranslatedField = iota

	// TranslatedRoleDescription is the roles.description overlay,
	// stored in role_translations.
	TranslatedRoleDescription
)

// TranslationStore persists per-locale values for translated fields.
type TranslationStore interface {
	// Get returns the stored value for (field, parentID, locale).
	// Returns ErrNotFound if no translation row exists.
	Get(ctx context.Context, field TranslatedField, parentID uuid.UUID, locale string) (string, error)

	// Upsert writes the value for (field, parentID, locale), inserting the
	// shadow row if it does not exist yet.
	Upsert(ctx context.Context, field TranslatedField, parentID uuid.UUID, locale, value string) error

	// Locales lists the locales a translation exists for, sorted.
	Locales(ctx context.Context, field TranslatedField, parentID uuid.UUID) ([]string, error)

	// WithTx returns a new TranslationStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TranslationStore
}
