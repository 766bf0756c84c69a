package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// UserRepository handles users and their per-user preference rows.
type UserRepository struct {
	db database.PGXDB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.PGXDB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates a user on first contact and refreshes names and activity afterwards.
// It reports whether the user was newly created.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) (bool, error) {
	var created bool
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, first_name, last_name, registered_at, last_activity_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			last_activity_at = NOW()
		RETURNING (xmax = 0)
	`, user.ID, user.Username, user.FirstName, user.LastName).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert user: %w", err)
	}
	return created, nil
}

// GetByID retrieves a user by their Telegram ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, first_name, last_name, registered_at, last_activity_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.RegisteredAt, &user.LastActivityAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// TouchActivity updates the user's last activity timestamp.
func (r *UserRepository) TouchActivity(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_activity_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to touch user activity: %w", err)
	}
	return nil
}

// ListAll returns every registered user ordered by registration.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, first_name, last_name, registered_at, last_activity_at
		FROM users ORDER BY registered_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.RegisteredAt, &u.LastActivityAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// GetLanguage returns the user's language code, or ErrNotFound when none is stored.
func (r *UserRepository) GetLanguage(ctx context.Context, userID int64) (string, error) {
	var code string
	err := r.db.QueryRow(ctx, `SELECT language_code FROM user_languages WHERE user_id = $1`, userID).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get language: %w", err)
	}
	return code, nil
}

// SetLanguage stores the user's language code.
func (r *UserRepository) SetLanguage(ctx context.Context, userID int64, code string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_languages (user_id, language_code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			language_code = EXCLUDED.language_code,
			updated_at = NOW()
	`, userID, code)
	if err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}
	return nil
}

// GetNotifications reports whether the user wants goal notifications. Defaults to true.
func (r *UserRepository) GetNotifications(ctx context.Context, userID int64) (bool, error) {
	var enabled bool
	err := r.db.QueryRow(ctx, `SELECT enabled FROM user_notifications WHERE user_id = $1`, userID).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("failed to get notification status: %w", err)
	}
	return enabled, nil
}

// SetNotifications stores the user's notification preference.
func (r *UserRepository) SetNotifications(ctx context.Context, userID int64, enabled bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_notifications (user_id, enabled)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			updated_at = NOW()
	`, userID, enabled)
	if err != nil {
		return fmt.Errorf("failed to set notification status: %w", err)
	}
	return nil
}
