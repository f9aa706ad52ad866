package domain

import (
	"time"

	"github.com/google/uuid"
)

// SocialConnection links a user to an external identity provider account.
// Rows are written by the OAuth callback, which lives outside this service;
// the API only exposes them read-only.
type SocialConnection struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"provider_user_id"`
	DisplayName    string    `json:"display_name"`
	ProfileURL     string    `json:"profile_url"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
}
