package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/database"
)

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to base currency", func(t *testing.T) {
		tx := database.TestTx(t)
		createTestUser(t, tx, 3001)

		s, err := NewSettingsRepository(tx, "RUB").GetCurrencySettings(ctx, 3001)
		require.NoError(t, err)
		require.Equal(t, "RUB", s.Currency)
		require.Equal(t, "RUB", s.OriginalCurrency)
	})

	t.Run("keeps original currency across switches", func(t *testing.T) {
		tx := database.TestTx(t)
		createTestUser(t, tx, 3002)
		repo := NewSettingsRepository(tx, "RUB")

		require.NoError(t, repo.SetCurrency(ctx, 3002, "USD"))
		require.NoError(t, repo.SetCurrency(ctx, 3002, "EUR"))

		s, err := repo.GetCurrencySettings(ctx, 3002)
		require.NoError(t, err)
		require.Equal(t, "EUR", s.Currency)
		require.Equal(t, "RUB", s.OriginalCurrency)

		var rows int
		require.NoError(t, tx.QueryRow(ctx, `SELECT COUNT(*) FROM user_settings WHERE user_id = 3002`).Scan(&rows))
		require.Equal(t, 1, rows)
	})
}
