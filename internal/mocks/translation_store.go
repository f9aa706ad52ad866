package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/store"
)

// MockTranslationStore is an in-memory store.TranslationStore. It keeps
// real (field, parent, locale) keyed values so translator behavior can be
// tested end to end without a database.
type MockTranslationStore struct {
	mu     sync.Mutex
	values map[string]string

	// Err, when set, is returned by every operation.
	Err error
}

var _ store.TranslationStore = (*MockTranslationStore)(nil)

func NewMockTranslationStore() *MockTranslationStore {
	return &MockTranslationStore{values: map[string]string{}}
}

func key(field store.TranslatedField, parentID uuid.UUID, locale string) string {
	return fmt.Sprintf("%d/%s/%s", field, parentID, locale)
}

func (m *MockTranslationStore) Get(ctx context.Context, field store.TranslatedField, parentID uuid.UUID, locale string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key(field, parentID, locale)]
	if !ok {
		return "", store.ErrNotFound
	}
	return value, nil
}

func (m *MockTranslationStore) Upsert(ctx context.Context, field store.TranslatedField, parentID uuid.UUID, locale, value string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key(field, parentID, locale)] = value
	return nil
}

func (m *MockTranslationStore) Locales(ctx context.Context, field store.TranslatedField, parentID uuid.UUID) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := fmt.Sprintf("%d/%s/", field, parentID)
	locales := []string{}
	for k := range m.values {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			locales = append(locales, k[len(prefix):])
		}
	}
	sort.Strings(locales)
	return locales, nil
}

func (m *MockTranslationStore) WithTx(tx *sql.Tx) store.TranslationStore {
	return m
}
