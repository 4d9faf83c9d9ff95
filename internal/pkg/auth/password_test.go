package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/pkg/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("sekrit1")
	require.NoError(t, err)
	require.NotEqual(t, "sekrit1", hash)

	assert.True(t, auth.CheckPassword(hash, "sekrit1"))
	assert.False(t, auth.CheckPassword(hash, "sekrit2"))
	assert.False(t, auth.CheckPassword("not-a-hash", "sekrit1"))
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		password, err := auth.GeneratePassword()
		require.NoError(t, err)
		assert.Len(t, password, 8)
		seen[password] = struct{}{}
	}
	// 20 draws from a 62^8 space should not collide
	assert.Greater(t, len(seen), 15)
}

func TestNewSession(t *testing.T) {
	session := auth.NewSession(auth.RoleAdmin, "root")

	assert.Equal(t, auth.RoleAdmin, session.Role)
	assert.Equal(t, "root", session.UserID)
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.StartedAt.IsZero())
}
