package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/repository"
)

// minStoredAmount keeps rescaled amounts positive after rounding to cents.
var minStoredAmount = decimal.New(1, -2)

// Converter converts amounts through stored rates. Every lookup reads the store.
type Converter struct {
	db   database.PGXDB
	base string
}

// NewConverter creates a Converter over db. base is the currency all stored rates are quoted against.
func NewConverter(db database.PGXDB, base string) *Converter {
	return &Converter{db: db, base: strings.ToUpper(base)}
}

// Rate returns the stored rate for code. Unknown codes are treated as the base currency.
func (c *Converter) Rate(ctx context.Context, code string) (decimal.Decimal, error) {
	return rateFrom(ctx, repository.NewCurrencyRepository(c.db), code)
}

func rateFrom(ctx context.Context, currencies *repository.CurrencyRepository, code string) (decimal.Decimal, error) {
	rate, err := currencies.GetRate(ctx, strings.ToUpper(code))
	if errors.Is(err, repository.ErrNotFound) {
		return one, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

// Convert converts amount between currencies through the base currency.
// The result is not rounded.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return convertWith(ctx, repository.NewCurrencyRepository(c.db), amount, from, to)
}

func convertWith(ctx context.Context, currencies *repository.CurrencyRepository, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return amount, nil
	}
	fromRate, err := rateFrom(ctx, currencies, from)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rate for %s: %w", from, err)
	}
	toRate, err := rateFrom(ctx, currencies, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rate for %s: %w", to, err)
	}
	return convertAmount(amount, fromRate, toRate), nil
}

func convertAmount(amount, fromRate, toRate decimal.Decimal) decimal.Decimal {
	return amount.Div(fromRate).Mul(toRate)
}

// ConvertUserOperations rewrites every operation of the user from one currency
// to another. Either all rows are converted or none are.
func (c *Converter) ConvertUserOperations(ctx context.Context, userID int64, from, to string) (int, error) {
	var converted int
	err := database.WithTx(ctx, c.db, func(tx database.PGXDB) error {
		var err error
		converted, err = convertOperations(ctx, tx, userID, from, to)
		return err
	})
	if err != nil {
		return 0, err
	}
	return converted, nil
}

func convertOperations(ctx context.Context, tx database.PGXDB, userID int64, from, to string) (int, error) {
	ops := repository.NewOperationRepository(tx)
	currencies := repository.NewCurrencyRepository(tx)

	list, err := ops.ListByUser(ctx, userID, nil)
	if err != nil {
		return 0, err
	}
	for _, op := range list {
		amount, err := convertWith(ctx, currencies, op.Amount, from, to)
		if err != nil {
			return 0, err
		}
		amount = decimal.Max(amount.Round(2), minStoredAmount)
		if err := ops.UpdateAmount(ctx, op.ID, amount, strings.ToUpper(to)); err != nil {
			return 0, fmt.Errorf("failed to convert operation %d: %w", op.ID, err)
		}
	}
	return len(list), nil
}

// SwitchCurrency converts the user's history into to and makes it the display
// currency. The setting only changes when the conversion commits. It reports
// the previous currency and whether anything changed.
func (c *Converter) SwitchCurrency(ctx context.Context, userID int64, to string) (string, bool, error) {
	to = strings.ToUpper(to)
	settings := repository.NewSettingsRepository(c.db, c.base)

	current, err := settings.GetCurrencySettings(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if current.Currency == to {
		return current.Currency, false, nil
	}

	var converted int
	err = database.WithTx(ctx, c.db, func(tx database.PGXDB) error {
		var err error
		if converted, err = convertOperations(ctx, tx, userID, current.Currency, to); err != nil {
			return err
		}
		return settings.WithDB(tx).SetCurrency(ctx, userID, to)
	})
	if err != nil {
		return current.Currency, false, fmt.Errorf("failed to switch currency: %w", err)
	}

	logger.Log.Info().
		Str("user_id", logger.HashUserID(userID)).
		Str("from", current.Currency).
		Str("to", to).
		Int("operations", converted).
		Msg("Switched display currency")
	return current.Currency, true, nil
}
