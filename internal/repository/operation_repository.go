package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// OperationRepository handles income and expense records.
type OperationRepository struct {
	db database.PGXDB
}

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository(db database.PGXDB) *OperationRepository {
	return &OperationRepository{db: db}
}

// CategoryTotal is the aggregate of one category across all users.
type CategoryTotal struct {
	Kind     models.OperationKind
	Category string
	Total    decimal.Decimal
	Count    int
}

// Totals holds global sums per kind.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

const operationColumns = `id, user_id, kind, amount, currency, category, comment,
	original_amount, original_currency, created_at`

// Create inserts a new operation and touches the owner's activity timestamp in one transaction.
func (r *OperationRepository) Create(ctx context.Context, op *models.Operation) error {
	if op.OriginalCurrency == "" {
		op.OriginalAmount = op.Amount
		op.OriginalCurrency = op.Currency
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}

	return database.WithTx(ctx, r.db, func(tx database.PGXDB) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO operations (user_id, kind, amount, currency, category, comment,
				original_amount, original_currency, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, op.UserID, op.Kind, op.Amount, op.Currency, op.Category, op.Comment,
			op.OriginalAmount, op.OriginalCurrency, op.CreatedAt).Scan(&op.ID)
		if err != nil {
			return fmt.Errorf("failed to create operation: %w", err)
		}

		return NewUserRepository(tx).TouchActivity(ctx, op.UserID)
	})
}

// ListByUser returns a user's operations, newest first. A nil since returns all of them.
func (r *OperationRepository) ListByUser(ctx context.Context, userID int64, since *time.Time) ([]models.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE user_id = $1`
	args := []any{userID}
	if since != nil {
		query += ` AND created_at >= $2`
		args = append(args, *since)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	return scanOperations(rows)
}

// ListAll returns every operation, oldest first.
func (r *OperationRepository) ListAll(ctx context.Context) ([]models.Operation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+operationColumns+` FROM operations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	return scanOperations(rows)
}

// Count returns the number of operations for a user.
func (r *OperationRepository) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM operations WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}
	return n, nil
}

// GlobalTotals sums all operations per kind. Amounts are summed as stored.
func (r *OperationRepository) GlobalTotals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0),
			COUNT(*)
		FROM operations
	`).Scan(&t.Income, &t.Expense, &t.Count)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to compute global totals: %w", err)
	}
	return t, nil
}

// TopCategories returns the largest categories of a kind across all users.
func (r *OperationRepository) TopCategories(ctx context.Context, kind models.OperationKind, limit int) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, SUM(amount), COUNT(*)
		FROM operations
		WHERE kind = $1
		GROUP BY category
		ORDER BY SUM(amount) DESC, category
		LIMIT $2
	`, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	defer rows.Close()

	var result []CategoryTotal
	for rows.Next() {
		ct := CategoryTotal{Kind: kind}
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		result = append(result, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return result, nil
}

// UpdateAmount rewrites the display amount and currency of one operation.
// Original amounts are left untouched.
func (r *OperationRepository) UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal, currency string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE operations SET amount = $2, currency = $3 WHERE id = $1
	`, id, amount, currency)
	if err != nil {
		return fmt.Errorf("failed to update operation amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOperations(rows pgx.Rows) ([]models.Operation, error) {
	defer rows.Close()

	var ops []models.Operation
	for rows.Next() {
		var op models.Operation
		if err := rows.Scan(&op.ID, &op.UserID, &op.Kind, &op.Amount, &op.Currency, &op.Category,
			&op.Comment, &op.OriginalAmount, &op.OriginalCurrency, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operations: %w", err)
	}
	return ops, nil
}
