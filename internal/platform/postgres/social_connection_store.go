package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lindenshop/storefront-api/internal/domain"
	"github.com/lindenshop/storefront-api/internal/platform/logger"
	"github.com/lindenshop/storefront-api/internal/store"
)

// PostgresSocialConnectionStore implements store.SocialConnectionStore.
// The OAuth callback service owns the write side of this table.
type PostgresSocialConnectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSocialConnectionStore creates a new PostgreSQL implementation
// of the SocialConnectionStore interface.
func NewPostgresSocialConnectionStore(db store.DBTX, logger *slog.Logger) *PostgresSocialConnectionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSocialConnectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "social_connection_store")),
	}
}

var _ store.SocialConnectionStore = (*PostgresSocialConnectionStore)(nil)

// ListByUser implements store.SocialConnectionStore.ListByUser
func (s *PostgresSocialConnectionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SocialConnection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, provider, provider_user_id, display_name,
			profile_url, image_url, created_at
		FROM social_connections
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list social connections",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	connections := []*domain.SocialConnection{}
	for rows.Next() {
		var conn domain.SocialConnection
		err := rows.Scan(
			&conn.ID,
			&conn.UserID,
			&conn.Provider,
			&conn.ProviderUserID,
			&conn.DisplayName,
			&conn.ProfileURL,
			&conn.ImageURL,
			&conn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		connections = append(connections, &conn)
	}
	return connections, rows.Err()
}
