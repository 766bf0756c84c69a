package database

import (
	"context"
	"fmt"
)

// migrations is the ordered list of idempotent schema statements.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY,
		username TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_activity_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS operations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
		amount NUMERIC(14, 2) NOT NULL CHECK (amount > 0),
		currency TEXT NOT NULL,
		category TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		original_amount NUMERIC(14, 2) NOT NULL,
		original_currency TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_operations_user_id ON operations(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_operations_created_at ON operations(created_at)`,

	`CREATE TABLE IF NOT EXISTS user_settings (
		user_id BIGINT PRIMARY KEY REFERENCES users(id),
		currency TEXT NOT NULL,
		original_currency TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_languages (
		user_id BIGINT PRIMARY KEY REFERENCES users(id),
		language_code TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_notifications (
		user_id BIGINT PRIMARY KEY REFERENCES users(id),
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS currencies (
		code TEXT PRIMARY KEY,
		rate NUMERIC(20, 10) NOT NULL CHECK (rate > 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		target_amount NUMERIC(14, 2) NOT NULL CHECK (target_amount > 0),
		current_amount NUMERIC(14, 2) NOT NULL DEFAULT 0 CHECK (current_amount >= 0),
		deadline TIMESTAMPTZ,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		completion_notified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (current_amount <= target_amount)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id)`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		chat_id BIGINT NOT NULL,
		task TEXT NOT NULL,
		due_at TIMESTAMPTZ NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		attempts INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reminders_pending ON reminders(due_at) WHERE NOT is_completed`,

	`CREATE TABLE IF NOT EXISTS admins (
		user_id BIGINT PRIMARY KEY REFERENCES users(id),
		username TEXT NOT NULL DEFAULT '',
		is_superadmin BOOLEAN NOT NULL DEFAULT FALSE,
		added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS conversation_states (
		user_id BIGINT PRIMARY KEY,
		state TEXT NOT NULL,
		data JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// RunMigrations creates the database schema.
func RunMigrations(ctx context.Context, db PGXDB) error {
	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
