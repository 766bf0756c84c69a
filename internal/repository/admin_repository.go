package repository

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// AdminRepository handles admin panel access.
type AdminRepository struct {
	db database.PGXDB
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(db database.PGXDB) *AdminRepository {
	return &AdminRepository{db: db}
}

// IsAdmin checks if a user may use the admin panel.
func (r *AdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	return exists, nil
}

// IsSuperAdmin checks if a user is a superadmin.
func (r *AdminRepository) IsSuperAdmin(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM admins WHERE user_id = $1 AND is_superadmin)
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check superadmin: %w", err)
	}
	return exists, nil
}

// Add grants admin access to an existing user. Adding twice is a no-op.
func (r *AdminRepository) Add(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO admins (user_id, username)
		SELECT id, username FROM users WHERE id = $1
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if ok, err := r.IsAdmin(ctx, userID); err == nil && ok {
			return nil
		}
		return ErrNotFound
	}
	return nil
}

// EnsureSuperAdmins makes sure each id exists as a user and a superadmin.
func (r *AdminRepository) EnsureSuperAdmins(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return database.WithTx(ctx, r.db, func(tx database.PGXDB) error {
		for _, id := range ids {
			if _, err := tx.Exec(ctx, `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
				return fmt.Errorf("failed to ensure superadmin user %d: %w", id, err)
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO admins (user_id, is_superadmin) VALUES ($1, TRUE)
				ON CONFLICT (user_id) DO UPDATE SET is_superadmin = TRUE
			`, id); err != nil {
				return fmt.Errorf("failed to ensure superadmin %d: %w", id, err)
			}
		}
		return nil
	})
}

// List returns all admins ordered by when they were added.
func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.user_id, COALESCE(NULLIF(a.username, ''), u.username, ''), a.is_superadmin, a.added_at
		FROM admins a LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.added_at, a.user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.UserID, &a.Username, &a.IsSuperAdmin, &a.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admins: %w", err)
	}
	return admins, nil
}
