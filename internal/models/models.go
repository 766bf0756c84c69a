// Package models defines the domain entities for the finance tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the display currency for users without settings.
const DefaultCurrency = "RUB"

// MaxGoalNameLength is the maximum allowed length for goal names.
const MaxGoalNameLength = 100

// MaxReminderTaskLength is the maximum allowed length for reminder tasks.
const MaxReminderTaskLength = 500

// SupportedCurrencies lists all supported currency codes with their symbols.
var SupportedCurrencies = map[string]string{
	"RUB": "₽",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CNY": "¥",
}

// CurrencySymbol returns the symbol for a currency code, or the code itself.
func CurrencySymbol(code string) string {
	if symbol, ok := SupportedCurrencies[code]; ok {
		return symbol
	}
	return code
}

// User represents a Telegram user.
type User struct {
	ID             int64
	Username       string
	FirstName      string
	LastName       string
	RegisteredAt   time.Time
	LastActivityAt time.Time
}

// OperationKind is either income or expense.
type OperationKind string

// Operation kinds.
const (
	KindIncome  OperationKind = "income"
	KindExpense OperationKind = "expense"
)

// Valid reports whether k is a known kind.
func (k OperationKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Operation represents a single income or expense entry.
type Operation struct {
	ID               int64
	UserID           int64
	Kind             OperationKind
	Amount           decimal.Decimal
	Currency         string
	Category         string
	Comment          string
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	CreatedAt        time.Time
}

// UserSettings holds per-user currency preferences.
type UserSettings struct {
	UserID           int64
	Currency         string
	OriginalCurrency string
	UpdatedAt        time.Time
}

// CurrencyRate is the number of units of Code per one unit of the base currency.
type CurrencyRate struct {
	Code      string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}

// Goal is a savings target.
type Goal struct {
	ID                 int64
	UserID             int64
	Name               string
	TargetAmount       decimal.Decimal
	CurrentAmount      decimal.Decimal
	Deadline           *time.Time
	IsCompleted        bool
	CompletionNotified bool
	CreatedAt          time.Time
}

var hundred = decimal.NewFromInt(100)

// Reached reports whether the goal's progress has met its target.
// Both the inline progress update and the daily sweep use this predicate.
func (g *Goal) Reached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Percent returns progress toward the target, capped at 100 and rounded to one place.
func (g *Goal) Percent() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		p = hundred
	}
	return p.Round(1)
}

// Reminder is a one-shot notification at a user-specified time.
type Reminder struct {
	ID          int64
	UserID      int64
	ChatID      int64
	Task        string
	DueAt       time.Time
	IsCompleted bool
	Attempts    int
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Admin is a user allowed to use the admin panel.
type Admin struct {
	UserID       int64
	Username     string
	IsSuperAdmin bool
	AddedAt      time.Time
}
