package exchange

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	p := NewStaticProvider()
	require.Equal(t, "static", p.Name())

	t.Run("rub base returns a copy of defaults", func(t *testing.T) {
		t.Parallel()
		rates, err := p.Rates(context.Background(), "rub")
		require.NoError(t, err)
		require.True(t, decimal.RequireFromString("0.011").Equal(rates["USD"]))

		rates["USD"] = decimal.NewFromInt(42)
		require.True(t, decimal.RequireFromString("0.011").Equal(DefaultRates["USD"]))
	})

	t.Run("rebased to eur", func(t *testing.T) {
		t.Parallel()
		rates, err := p.Rates(context.Background(), "EUR")
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(1).Equal(rates["EUR"]))
		require.True(t, decimal.NewFromInt(1).Div(decimal.RequireFromString("0.0095")).Equal(rates["RUB"]))
	})

	t.Run("unknown base", func(t *testing.T) {
		t.Parallel()
		_, err := p.Rates(context.Background(), "JPY")
		require.ErrorIs(t, err, errRateMissing)
	})
}
