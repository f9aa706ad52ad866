package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/platform/logger"
	"github.com/lindenshop/storefront-api/internal/store"
)

// translationTable maps a translated field to its shadow table layout.
type translationTable struct {
	table       string
	parentCol   string
	valueCol    string
	parentTable string
}

// fieldTables is the authoritative mapping of translated fields to
// shadow tables. Adding a localized column means adding a row here
// plus a migration for the new table.
var fieldTables = map[store.TranslatedField]translationTable{
	store.TranslatedCustomerNotes: {
		table:       "customer_translations",
		parentCol:   "customer_id",
		valueCol:    "notes",
		parentTable: "customers",
	},
	store.TranslatedRoleDescription: {
		table:       "role_translations",
		parentCol:   "role_id",
		valueCol:    "description",
		parentTable: "roles",
	},
}

// PostgresTranslationStore implements store.TranslationStore using
// per-entity shadow tables keyed by (parent, locale).
type PostgresTranslationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTranslationStore creates a new PostgreSQL implementation of
// the TranslationStore interface.
func NewPostgresTranslationStore(db store.DBTX, logger *slog.Logger) *PostgresTranslationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTranslationStore{
		db:     db,
		logger: logger.With(slog.String("component", "translation_store")),
	}
}

var _ store.TranslationStore = (*PostgresTranslationStore)(nil)

// WithTx implements store.TranslationStore.WithTx
func (s *PostgresTranslationStore) WithTx(tx *sql.Tx) store.TranslationStore {
	return &PostgresTranslationStore{
		db:     tx,
		logger: s.logger,
	}
}

// Get implements store.TranslationStore.Get
func (s *PostgresTranslationStore) Get(ctx context.Context, field store.TranslatedField, parentID uuid.UUID, locale string) (string, error) {
	tbl, err := tableFor(field)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND locale = $2",
		tbl.valueCol, tbl.table, tbl.parentCol,
	)

	var value string
	err = s.db.QueryRowContext(ctx, query, parentID, locale).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Upsert implements store.TranslationStore.Upsert
func (s *PostgresTranslationStore) Upsert(ctx context.Context, field store.TranslatedField, parentID uuid.UUID, locale, value string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tbl, err := tableFor(field)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, locale, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, locale) DO UPDATE SET %s = EXCLUDED.%s
	`, tbl.table, tbl.parentCol, tbl.valueCol, tbl.parentCol, tbl.valueCol, tbl.valueCol)

	_, err = s.db.ExecContext(ctx, query, parentID, locale, value)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: no %s row %s", store.ErrInvalidEntity, tbl.parentTable, parentID)
		}
		log.Error("failed to upsert translation",
			slog.String("error", err.Error()),
			slog.String("table", tbl.table),
			slog.String("locale", locale))
		return err
	}
	return nil
}

// Locales implements store.TranslationStore.Locales
func (s *PostgresTranslationStore) Locales(ctx context.Context, field store.TranslatedField, parentID uuid.UUID) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tbl, err := tableFor(field)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT locale FROM %s WHERE %s = $1 ORDER BY locale",
		tbl.table, tbl.parentCol,
	)
	rows, err := s.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, log)

	locales := []string{}
	for rows.Next() {
		var locale string
		if err := rows.Scan(&locale); err != nil {
			return nil, err
		}
		locales = append(locales, locale)
	}
	return locales, rows.Err()
}

func tableFor(field store.TranslatedField) (translationTable, error) {
	tbl, ok := fieldTables[field]
	if !ok {
		return translationTable{}, fmt.Errorf("unknown translated field %d", field)
	}
	return tbl, nil
}
