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

// CurrencyRepository handles stored exchange rates.
type CurrencyRepository struct {
	db database.PGXDB
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(db database.PGXDB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// GetRate returns the stored rate for code, or ErrNotFound.
func (r *CurrencyRepository) GetRate(ctx context.Context, code string) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT rate FROM currencies WHERE code = $1`, code).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get rate: %w", err)
	}
	return rate, nil
}

// UpsertRates stores rates, replacing existing values, in one transaction.
func (r *CurrencyRepository) UpsertRates(ctx context.Context, rates map[string]decimal.Decimal) error {
	return r.writeRates(ctx, rates, `
		INSERT INTO currencies (code, rate, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (code) DO UPDATE SET
			rate = EXCLUDED.rate,
			updated_at = NOW()
	`)
}

// InsertMissing stores only the rates whose codes are not present yet.
func (r *CurrencyRepository) InsertMissing(ctx context.Context, rates map[string]decimal.Decimal) error {
	return r.writeRates(ctx, rates, `
		INSERT INTO currencies (code, rate, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (code) DO NOTHING
	`)
}

func (r *CurrencyRepository) writeRates(ctx context.Context, rates map[string]decimal.Decimal, query string) error {
	return database.WithTx(ctx, r.db, func(tx database.PGXDB) error {
		for code, rate := range rates {
			if !rate.IsPositive() {
				continue
			}
			if _, err := tx.Exec(ctx, query, code, rate); err != nil {
				return fmt.Errorf("failed to store rate %s: %w", code, err)
			}
		}
		return nil
	})
}

// List returns all stored rates ordered by code.
func (r *CurrencyRepository) List(ctx context.Context) ([]models.CurrencyRate, error) {
	rows, err := r.db.Query(ctx, `SELECT code, rate, updated_at FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	var rates []models.CurrencyRate
	for rows.Next() {
		var cr models.CurrencyRate
		if err := rows.Scan(&cr.Code, &cr.Rate, &cr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}
	return rates, nil
}
