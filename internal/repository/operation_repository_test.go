package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

func newOp(userID int64, kind models.OperationKind, amount, category string) *models.Operation {
	return &models.Operation{
		UserID:   userID,
		Kind:     kind,
		Amount:   decimal.RequireFromString(amount),
		Currency: "RUB",
		Category: category,
	}
}

func TestOperationRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and records original amount", func(t *testing.T) {
		tx := database.TestTx(t)
		createTestUser(t, tx, 2001)
		repo := NewOperationRepository(tx)

		op := newOp(2001, models.KindExpense, "123.45", "Expense")
		op.Comment = "coffee"
		require.NoError(t, repo.Create(ctx, op))
		require.NotZero(t, op.ID)
		require.False(t, op.CreatedAt.IsZero())

		ops, err := repo.ListByUser(ctx, 2001, nil)
		require.NoError(t, err)
		require.Len(t, ops, 1)
		require.True(t, op.Amount.Equal(ops[0].Amount))
		require.True(t, ops[0].OriginalAmount.Equal(ops[0].Amount))
		require.Equal(t, "RUB", ops[0].OriginalCurrency)
		require.Equal(t, "coffee", ops[0].Comment)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		tx := database.TestTx(t)
		createTestUser(t, tx, 2002)

		repo := NewOperationRepository(tx)
		err := repo.Create(ctx, newOp(2002, models.KindIncome, "0", "Income"))
		require.Error(t, err)

		// The failed insert is rolled back to its savepoint; the outer transaction stays usable.
		n, err := repo.Count(ctx, 2002)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestOperationRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	tx := database.TestTx(t)
	createTestUser(t, tx, 2010)
	createTestUser(t, tx, 2011)
	repo := NewOperationRepository(tx)

	old := newOp(2010, models.KindIncome, "100", "Income")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, newOp(2010, models.KindExpense, "40", "Expense")))
	require.NoError(t, repo.Create(ctx, newOp(2011, models.KindExpense, "999", "Expense")))

	all, err := repo.ListByUser(ctx, 2010, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	since := time.Now().Add(-time.Hour)
	recent, err := repo.ListByUser(ctx, 2010, &since)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, models.KindExpense, recent[0].Kind)

	n, err := repo.Count(ctx, 2010)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestOperationRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	tx := database.TestTx(t)
	_, err := tx.Exec(ctx, `DELETE FROM operations`)
	require.NoError(t, err)
	createTestUser(t, tx, 2020)
	repo := NewOperationRepository(tx)

	require.NoError(t, repo.Create(ctx, newOp(2020, models.KindIncome, "500", "Salary")))
	require.NoError(t, repo.Create(ctx, newOp(2020, models.KindExpense, "30", "Food")))
	require.NoError(t, repo.Create(ctx, newOp(2020, models.KindExpense, "20", "Food")))
	require.NoError(t, repo.Create(ctx, newOp(2020, models.KindExpense, "70", "Rent")))

	totals, err := repo.GlobalTotals(ctx)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(500).Equal(totals.Income))
	require.True(t, decimal.NewFromInt(120).Equal(totals.Expense))
	require.Equal(t, 4, totals.Count)

	top, err := repo.TopCategories(ctx, models.KindExpense, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "Rent", top[0].Category)
	require.Equal(t, "Food", top[1].Category)
	require.Equal(t, 2, top[1].Count)
}

func TestOperationRepository_UpdateAmount(t *testing.T) {
	ctx := context.Background()
	tx := database.TestTx(t)
	createTestUser(t, tx, 2030)
	repo := NewOperationRepository(tx)

	op := newOp(2030, models.KindExpense, "100", "Expense")
	require.NoError(t, repo.Create(ctx, op))
	require.NoError(t, repo.UpdateAmount(ctx, op.ID, decimal.RequireFromString("1.10"), "USD"))

	ops, err := repo.ListByUser(ctx, 2030, nil)
	require.NoError(t, err)
	require.Equal(t, "USD", ops[0].Currency)
	require.True(t, decimal.RequireFromString("1.10").Equal(ops[0].Amount))
	require.True(t, decimal.NewFromInt(100).Equal(ops[0].OriginalAmount))
	require.Equal(t, "RUB", ops[0].OriginalCurrency)

	require.ErrorIs(t, repo.UpdateAmount(ctx, 987654321, decimal.NewFromInt(1), "USD"), ErrNotFound)
}
