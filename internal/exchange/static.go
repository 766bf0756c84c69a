package exchange

import (
	"context"
	"maps"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRates are the built-in rates against RUB used to seed the store.
var DefaultRates = map[string]decimal.Decimal{
	"RUB": decimal.NewFromInt(1),
	"USD": decimal.RequireFromString("0.011"),
	"EUR": decimal.RequireFromString("0.0095"),
	"GBP": decimal.RequireFromString("0.0081"),
	"CNY": decimal.RequireFromString("0.079"),
}

// StaticProvider serves a fixed rate table.
type StaticProvider struct {
	rates map[string]decimal.Decimal
	quote string
}

// NewStaticProvider returns a provider over DefaultRates.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{rates: DefaultRates, quote: "RUB"}
}

// Name identifies the provider in logs.
func (p *StaticProvider) Name() string { return "static" }

// Rates returns the static table rebased to base.
func (p *StaticProvider) Rates(_ context.Context, base string) (map[string]decimal.Decimal, error) {
	base = strings.ToUpper(base)
	if base == p.quote {
		return maps.Clone(p.rates), nil
	}
	return rebase(p.rates, base)
}
