package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			email:    "jane@example.com",
			password: "correct-horse",
			wantErr:  nil,
		},
		{
			name:     "email is normalized",
			email:    "  Jane@Example.COM ",
			password: "correct-horse",
			wantErr:  nil,
		},
		{
			name:     "empty email",
			email:    "",
			password: "correct-horse",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "malformed email",
			email:    "not-an-email",
			password: "correct-horse",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "missing domain dot",
			email:    "jane@example",
			password: "correct-horse",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "password too short",
			email:    "jane@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			email:    "jane@example.com",
			password: string(make([]byte, 73)),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := NewUser(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.True(t, user.Active)
			assert.Equal(t, "jane@example.com", user.Email)
		})
	}
}

func TestUserValidateWithoutPassword(t *testing.T) {
	t.Parallel()

	user := &User{
		ID:    uuid.New(),
		Email: "jane@example.com",
	}

	// Neither plaintext nor hash present.
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)

	// A stored hash is enough for a loaded user.
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, user.Validate())
}

func TestUserRoles(t *testing.T) {
	t.Parallel()

	user := &User{
		ID:             uuid.New(),
		Email:          "jane@example.com",
		HashedPassword: "hash",
		Roles: []Role{
			{ID: uuid.New(), Name: "customer"},
		},
	}

	assert.True(t, user.HasRole("customer"))
	assert.False(t, user.HasRole(RoleAdmin))
	assert.False(t, user.IsSuperuser())

	user.Roles = append(user.Roles, Role{ID: uuid.New(), Name: RoleAdmin})
	assert.True(t, user.IsSuperuser())
}
