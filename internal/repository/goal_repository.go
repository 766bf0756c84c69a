package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// GoalRepository handles savings goals.
type GoalRepository struct {
	db database.PGXDB
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db database.PGXDB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline,
	is_completed, completion_notified, created_at`

// Create inserts a new goal with zero progress.
func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	goal.CurrentAmount = decimal.Zero
	err := r.db.QueryRow(ctx, `
		INSERT INTO goals (user_id, name, target_amount, current_amount, deadline)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id, created_at
	`, goal.UserID, goal.Name, goal.TargetAmount, goal.Deadline).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// Get retrieves a goal owned by userID.
func (r *GoalRepository) Get(ctx context.Context, userID, goalID int64) (*models.Goal, error) {
	row := r.db.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// ListActive returns a user's goals that are not completed, oldest first.
func (r *GoalRepository) ListActive(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE user_id = $1 AND NOT is_completed
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	return scanGoals(rows)
}

// ListByUser returns all of a user's goals, oldest first.
func (r *GoalRepository) ListByUser(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	return scanGoals(rows)
}

// ListIncomplete returns goals across all users that are not completed or
// have not had their completion notice sent.
func (r *GoalRepository) ListIncomplete(ctx context.Context) ([]models.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE NOT is_completed OR NOT completion_notified
		ORDER BY user_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomplete goals: %w", err)
	}
	return scanGoals(rows)
}

// SaveProgress writes progress and completion in a single update.
// Completion is one-way.
func (r *GoalRepository) SaveProgress(ctx context.Context, goalID int64, current decimal.Decimal, completed bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE goals
		SET current_amount = $2, is_completed = is_completed OR $3
		WHERE id = $1
	`, goalID, current, completed)
	if err != nil {
		return fmt.Errorf("failed to save goal progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ForceComplete sets progress to the target and marks the goal completed.
func (r *GoalRepository) ForceComplete(ctx context.Context, userID, goalID int64) (*models.Goal, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE goals
		SET current_amount = target_amount, is_completed = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING `+goalColumns, goalID, userID)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to complete goal: %w", err)
	}
	return goal, nil
}

// ClaimCompletionNotice atomically marks a reached goal as notified. It reports
// false when another caller already claimed it or the goal has not been reached.
func (r *GoalRepository) ClaimCompletionNotice(ctx context.Context, goalID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE goals
		SET completion_notified = TRUE, is_completed = TRUE
		WHERE id = $1 AND NOT completion_notified AND current_amount >= target_amount
	`, goalID)
	if err != nil {
		return false, fmt.Errorf("failed to claim completion notice: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseCompletionNotice clears a claim whose message could not be delivered.
func (r *GoalRepository) ReleaseCompletionNotice(ctx context.Context, goalID int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE goals SET completion_notified = FALSE WHERE id = $1`, goalID); err != nil {
		return fmt.Errorf("failed to release completion notice: %w", err)
	}
	return nil
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline,
		&g.IsCompleted, &g.CompletionNotified, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func scanGoals(rows pgx.Rows) ([]models.Goal, error) {
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}
