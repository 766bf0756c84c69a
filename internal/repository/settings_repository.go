package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// SettingsRepository handles per-user currency settings.
type SettingsRepository struct {
	db           database.PGXDB
	baseCurrency string
}

// NewSettingsRepository creates a new SettingsRepository. Users without a
// settings row are reported as using baseCurrency.
func NewSettingsRepository(db database.PGXDB, baseCurrency string) *SettingsRepository {
	if baseCurrency == "" {
		baseCurrency = models.DefaultCurrency
	}
	return &SettingsRepository{db: db, baseCurrency: baseCurrency}
}

// WithDB returns a copy bound to db, typically a transaction.
func (r *SettingsRepository) WithDB(db database.PGXDB) *SettingsRepository {
	return &SettingsRepository{db: db, baseCurrency: r.baseCurrency}
}

// GetCurrencySettings returns the user's currency settings, defaulting to the base currency.
func (r *SettingsRepository) GetCurrencySettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	s := models.UserSettings{UserID: userID}
	err := r.db.QueryRow(ctx, `
		SELECT currency, original_currency, updated_at
		FROM user_settings WHERE user_id = $1
	`, userID).Scan(&s.Currency, &s.OriginalCurrency, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.Currency = r.baseCurrency
			s.OriginalCurrency = r.baseCurrency
			return &s, nil
		}
		return nil, fmt.Errorf("failed to get currency settings: %w", err)
	}
	return &s, nil
}

// SetCurrency stores the user's display currency. The original currency is recorded
// on first write and never overwritten.
func (r *SettingsRepository) SetCurrency(ctx context.Context, userID int64, currency string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_settings (user_id, currency, original_currency)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			currency = EXCLUDED.currency,
			updated_at = NOW()
	`, userID, currency, r.baseCurrency)
	if err != nil {
		return fmt.Errorf("failed to set currency: %w", err)
	}
	return nil
}
