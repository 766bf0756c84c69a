package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
)

// RateStore persists rates.
type RateStore interface {
	UpsertRates(ctx context.Context, rates map[string]decimal.Decimal) error
	InsertMissing(ctx context.Context, rates map[string]decimal.Decimal) error
}

// Refresher pulls rates from a provider into the store.
type Refresher struct {
	provider RateProvider
	store    RateStore
	base     string
}

// NewRefresher creates a Refresher quoting rates against base.
func NewRefresher(provider RateProvider, store RateStore, base string) *Refresher {
	return &Refresher{provider: provider, store: store, base: strings.ToUpper(base)}
}

// Seed inserts the static defaults for codes the store does not know yet.
func (r *Refresher) Seed(ctx context.Context) error {
	rates, err := NewStaticProvider().Rates(ctx, r.base)
	if err != nil {
		// Base outside the static table: only the base itself is known.
		rates = map[string]decimal.Decimal{r.base: one}
	}
	if err := r.store.InsertMissing(ctx, rates); err != nil {
		return fmt.Errorf("failed to seed rates: %w", err)
	}
	return nil
}

// Refresh fetches current rates and stores them.
func (r *Refresher) Refresh(ctx context.Context) error {
	rates, err := r.provider.Rates(ctx, r.base)
	if err != nil {
		return fmt.Errorf("failed to fetch rates from %s: %w", r.provider.Name(), err)
	}
	rates[r.base] = one

	if err := r.store.UpsertRates(ctx, rates); err != nil {
		return fmt.Errorf("failed to store rates: %w", err)
	}

	logger.Log.Info().
		Str("provider", r.provider.Name()).
		Int("count", len(rates)).
		Msg("Exchange rates refreshed")
	return nil
}
