package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	t.Parallel()

	t.Run("trims the name", func(t *testing.T) {
		t.Parallel()

		role, err := NewRole("  support  ")
		require.NoError(t, err)
		assert.Equal(t, "support", role.Name)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		t.Parallel()

		_, err := NewRole("   ")
		assert.ErrorIs(t, err, ErrEmptyRoleName)
	})
}
