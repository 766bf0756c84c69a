package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

func TestReminderRepository(t *testing.T) {
	ctx := context.Background()
	tx := database.TestTx(t)
	createTestUser(t, tx, 5001)
	repo := NewReminderRepository(tx)

	now := time.Now()
	due := &models.Reminder{UserID: 5001, ChatID: 5001, Task: "pay rent", DueAt: now.Add(-time.Minute)}
	later := &models.Reminder{UserID: 5001, ChatID: 5001, Task: "call bank", DueAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, later))

	pending, err := repo.ListPending(ctx, 5001)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, due.ID, pending[0].ID)

	dueList, err := repo.ListDue(ctx, now, 5)
	require.NoError(t, err)
	ids := reminderIDs(dueList)
	require.Contains(t, ids, due.ID)
	require.NotContains(t, ids, later.ID)

	t.Run("failures exhaust attempts", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			n, err := repo.RecordFailure(ctx, due.ID)
			require.NoError(t, err)
			require.Equal(t, i, n)
		}
		dueList, err := repo.ListDue(ctx, now, 2)
		require.NoError(t, err)
		require.NotContains(t, reminderIDs(dueList), due.ID)
	})

	t.Run("mark completed once", func(t *testing.T) {
		ok, err := repo.MarkCompleted(ctx, due.ID)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.MarkCompleted(ctx, due.ID)
		require.NoError(t, err)
		require.False(t, ok)

		pending, err := repo.ListPending(ctx, 5001)
		require.NoError(t, err)
		require.Len(t, pending, 1)
	})
}

func reminderIDs(rs []models.Reminder) []int64 {
	ids := make([]int64, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}
