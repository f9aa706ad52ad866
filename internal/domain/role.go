package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoleID   = errors.New("role ID cannot be empty")
	ErrEmptyRoleName = errors.New("role name cannot be empty")
)

// Role is a named permission group assigned to users.
// Description is a localized field resolved through the translation overlay.
type Role struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRole creates a new Role with the given name.
func NewRole(name string) (*Role, error) {
	now := time.Now().UTC()
	role := &Role{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := role.Validate(); err != nil {
		return nil, err
	}

	return role, nil
}

// Validate checks if the Role has valid data.
func (r *Role) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRoleID
	}
	if r.Name == "" {
		return ErrEmptyRoleName
	}
	return nil
}
