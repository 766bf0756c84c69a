// Package exchange looks up currency rates, converts amounts and rescales a
// user's history when they switch display currency.
package exchange

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	errRateMissing            = errors.New("conversion rate missing in response")
	errInvalidNonPositiveRate = errors.New("conversion rate must be positive")
)

// RateProvider fetches current rates expressed as units of each currency per
// one unit of base. The base itself is always present with rate 1.
type RateProvider interface {
	Name() string
	Rates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

var one = decimal.NewFromInt(1)

// rebase re-expresses rates quoted against from as rates against to.
func rebase(rates map[string]decimal.Decimal, to string) (map[string]decimal.Decimal, error) {
	pivot, ok := rates[to]
	if !ok || !pivot.IsPositive() {
		return nil, errRateMissing
	}
	out := make(map[string]decimal.Decimal, len(rates))
	for code, r := range rates {
		out[code] = r.Div(pivot)
	}
	out[to] = one
	return out, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
