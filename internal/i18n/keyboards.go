package i18n

import (
	"cmp"
	"slices"

	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// Menu identifies a reply keyboard layout.
type Menu int

// Keyboard layouts.
const (
	MenuMain Menu = iota
	MenuCategory
	MenuReport
	MenuSettings
	MenuCurrency
	MenuLanguage
	MenuNotifications
	MenuGoals
	MenuGoalDeadline
	MenuReminders
	MenuReminderPeriod
	MenuPomodoro
	MenuAdmin
	MenuBack
)

var layouts = map[Menu][][]string{
	MenuMain: {
		{"add_operation", "balance"},
		{"report", "statistics"},
		{"goals", "reminders"},
		{"pomodoro", "export"},
		{"settings", "help"},
	},
	MenuCategory:       {{"add_expense"}, {"add_income"}, {"back"}},
	MenuReport:         {{"daily_report"}, {"weekly_report"}, {"monthly_report"}, {"back"}},
	MenuSettings:       {{"change_currency"}, {"language"}, {"notifications"}, {"back"}},
	MenuLanguage:       {{"russian_language", "english_language"}, {"back"}},
	MenuNotifications:  {{"notifications_on"}, {"notifications_off"}, {"back"}},
	MenuGoals:          {{"add_goal", "view_goals"}, {"contribute_goal", "complete_goal"}, {"back"}},
	MenuGoalDeadline:   {{"skip"}, {"back"}},
	MenuReminders:      {{"add_reminder", "view_reminders"}, {"back"}},
	MenuReminderPeriod: {{"today", "tomorrow"}, {"next_week"}, {"back"}},
	MenuPomodoro:       {{"pomodoro_start", "pomodoro_stop"}, {"back"}},
	MenuAdmin:          {{"admin_stats", "admin_export"}, {"back"}},
	MenuBack:           {{"back"}},
}

// Keyboard returns the localized button rows for menu.
func Keyboard(lang string, menu Menu) [][]string {
	if menu == MenuCurrency {
		return currencyKeyboard(lang)
	}
	layout, ok := layouts[menu]
	if !ok {
		layout = layouts[MenuBack]
	}
	rows := make([][]string, 0, len(layout))
	for _, keys := range layout {
		row := make([]string, 0, len(keys))
		for _, key := range keys {
			row = append(row, T(lang, key))
		}
		rows = append(rows, row)
	}
	return rows
}

// CurrencyLabel is the button text for a currency code.
func CurrencyLabel(code string) string {
	return code + " " + models.CurrencySymbol(code)
}

// CurrencyFromLabel returns the currency code for a button label, or "".
func CurrencyFromLabel(text string) string {
	for code := range models.SupportedCurrencies {
		if text == CurrencyLabel(code) || text == code {
			return code
		}
	}
	return ""
}

// CurrencyCodes returns the supported currency codes in a stable order.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(models.SupportedCurrencies))
	for code := range models.SupportedCurrencies {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, func(a, b string) int {
		// Default currency first, the rest alphabetical.
		switch {
		case a == models.DefaultCurrency:
			return -1
		case b == models.DefaultCurrency:
			return 1
		}
		return cmp.Compare(a, b)
	})
	return codes
}

func currencyKeyboard(lang string) [][]string {
	codes := CurrencyCodes()
	rows := make([][]string, 0, len(codes)/2+2)
	for i := 0; i < len(codes); i += 2 {
		row := []string{CurrencyLabel(codes[i])}
		if i+1 < len(codes) {
			row = append(row, CurrencyLabel(codes[i+1]))
		}
		rows = append(rows, row)
	}
	return append(rows, []string{T(lang, "back")})
}
