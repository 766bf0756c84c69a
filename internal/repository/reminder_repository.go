package repository

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// ReminderRepository handles one-shot reminders.
type ReminderRepository struct {
	db database.PGXDB
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(db database.PGXDB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = `id, user_id, chat_id, task, due_at, is_completed, attempts, created_at, completed_at`

// Create inserts a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, rem *models.Reminder) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO reminders (user_id, chat_id, task, due_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, rem.UserID, rem.ChatID, rem.Task, rem.DueAt).Scan(&rem.ID, &rem.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// ListPending returns a user's reminders that have not fired yet, soonest first.
func (r *ReminderRepository) ListPending(ctx context.Context, userID int64) ([]models.Reminder, error) {
	return r.list(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE user_id = $1 AND NOT is_completed
		ORDER BY due_at, id
	`, userID)
}

// ListDue returns reminders across all users that are due at now and still pending.
// Reminders that exhausted maxAttempts are skipped.
func (r *ReminderRepository) ListDue(ctx context.Context, now time.Time, maxAttempts int) ([]models.Reminder, error) {
	return r.list(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE NOT is_completed AND due_at <= $1 AND attempts < $2
		ORDER BY due_at, id
	`, now, maxAttempts)
}

// MarkCompleted flags a reminder as delivered. It reports false when the
// reminder was already completed.
func (r *ReminderRepository) MarkCompleted(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE reminders SET is_completed = TRUE, completed_at = NOW()
		WHERE id = $1 AND NOT is_completed
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to complete reminder: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RecordFailure increments the delivery attempt counter and returns its new value.
func (r *ReminderRepository) RecordFailure(ctx context.Context, id int64) (int, error) {
	var attempts int
	err := r.db.QueryRow(ctx, `
		UPDATE reminders SET attempts = attempts + 1 WHERE id = $1 RETURNING attempts
	`, id).Scan(&attempts)
	if err != nil {
		return 0, fmt.Errorf("failed to record reminder failure: %w", err)
	}
	return attempts, nil
}

func (r *ReminderRepository) list(ctx context.Context, query string, args ...any) ([]models.Reminder, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.ChatID, &rem.Task, &rem.DueAt,
			&rem.IsCompleted, &rem.Attempts, &rem.CreatedAt, &rem.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}
	return reminders, nil
}
