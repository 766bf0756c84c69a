package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/database"
)

func TestAdminRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("ensure superadmins creates users", func(t *testing.T) {
		tx := database.TestTx(t)
		repo := NewAdminRepository(tx)

		require.NoError(t, repo.EnsureSuperAdmins(ctx, []int64{6001, 6002}))
		require.NoError(t, repo.EnsureSuperAdmins(ctx, []int64{6001}))

		ok, err := repo.IsSuperAdmin(ctx, 6001)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.IsAdmin(ctx, 6002)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("add admin requires known user", func(t *testing.T) {
		tx := database.TestTx(t)
		repo := NewAdminRepository(tx)

		require.ErrorIs(t, repo.Add(ctx, 6010), ErrNotFound)

		createTestUser(t, tx, 6010)
		require.NoError(t, repo.Add(ctx, 6010))
		require.NoError(t, repo.Add(ctx, 6010))

		ok, err := repo.IsAdmin(ctx, 6010)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.IsSuperAdmin(ctx, 6010)
		require.NoError(t, err)
		require.False(t, ok)

		admins, err := repo.List(ctx)
		require.NoError(t, err)
		found := false
		for _, a := range admins {
			if a.UserID == 6010 {
				found = true
				require.Equal(t, "user", a.Username)
			}
		}
		require.True(t, found)
	})

	t.Run("regular user is not admin", func(t *testing.T) {
		tx := database.TestTx(t)
		ok, err := NewAdminRepository(tx).IsAdmin(ctx, 6099)
		require.NoError(t, err)
		require.False(t, ok)
	})
}
