package flow

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that are not positive decimals.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// MaxAmount is the largest amount the operations table can hold.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ParseAmount parses a user-entered amount. Both "12.5" and "12,5" are accepted.
// The result is rounded to cents and must be positive.
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	amount = amount.Round(2)
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
