package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/yelinaung/finance-bot/internal/export"
	"gitlab.com/yelinaung/finance-bot/internal/flow"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/ledger"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
)

// topCategories is how many categories per kind the statistics view lists.
const topCategories = 3

var reportPeriods = map[string]ledger.Period{
	"daily_report":   ledger.Day,
	"weekly_report":  ledger.Week,
	"monthly_report": ledger.Month,
}

// sendBalance replies with the all-time balance.
func (b *Bot) sendBalance(ctx context.Context, tg TelegramAPI, in flow.Input) {
	summary, err := b.ledger.Balance(ctx, in.UserID, ledger.All)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to compute balance")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return
	}

	cur := b.currency(ctx, in.UserID)
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "balance_text",
		ledger.FormatMoney(summary.Balance(), cur),
		ledger.FormatMoney(summary.TotalIncome, cur),
		ledger.FormatMoney(summary.TotalExpense, cur),
	)
}

// onReportPeriod answers a period button with a text report and a chart.
func (b *Bot) onReportPeriod(ctx context.Context, tg TelegramAPI, in flow.Input) {
	key := i18n.LabelKey(in.Text, "daily_report", "weekly_report", "monthly_report")
	period, ok := reportPeriods[key]
	if !ok {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuReport, "please_select")
		return
	}
	b.cancel(ctx, in.UserID)

	summary, err := b.ledger.Balance(ctx, in.UserID, period)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("user_id", logger.HashUserID(in.UserID)).
			Str("period", string(period)).
			Msg("Failed to build report")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return
	}

	periodName := i18n.T(in.Lang, "period_"+string(period))
	cur := b.currency(ctx, in.UserID)
	sendText(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, formatReport(in.Lang, periodName, cur, summary))

	chart, err := export.ExpenseChart(i18n.Tf(in.Lang, "report_chart_title", periodName), summary)
	if errors.Is(err, export.ErrNoData) {
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to render report chart")
		return
	}
	if err := sendFile(ctx, tg, in.ChatID, export.ChartFilename(period, b.now().In(b.loc)), "", chart); err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to send report chart")
	}
}

// formatReport renders totals and per-category sums for a period.
func formatReport(lang, periodName, cur string, s ledger.Summary) string {
	var sb strings.Builder
	sb.WriteString(i18n.Tf(lang, "report_for_period", periodName))
	sb.WriteString("\n\n")
	if s.Empty() {
		sb.WriteString(i18n.T(lang, "no_data"))
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s: %s\n", i18n.T(lang, "total_income"), ledger.FormatMoney(s.TotalIncome, cur))
	fmt.Fprintf(&sb, "%s: %s\n", i18n.T(lang, "total_expense"), ledger.FormatMoney(s.TotalExpense, cur))
	fmt.Fprintf(&sb, "%s: %s", i18n.T(lang, "current_balance"), ledger.FormatMoney(s.Balance(), cur))

	writeSection := func(titleKey string, list []ledger.CategoryStat) {
		if len(list) == 0 {
			return
		}
		sb.WriteString("\n\n")
		sb.WriteString(i18n.T(lang, titleKey))
		sb.WriteString(":")
		for _, c := range list {
			fmt.Fprintf(&sb, "\n%s: %s", c.Category, ledger.FormatMoney(c.Total, cur))
		}
	}
	writeSection("income_by_category", ledger.Rank(s.IncomeByCategory))
	writeSection("expense_by_category", ledger.Rank(s.ExpenseByCategory))
	return sb.String()
}

// sendStatistics replies with all-time totals and the leading categories.
func (b *Bot) sendStatistics(ctx context.Context, tg TelegramAPI, in flow.Input) {
	stats, err := b.ledger.Stats(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to compute statistics")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return
	}
	sendText(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, formatStatistics(in.Lang, b.currency(ctx, in.UserID), stats))
}

func formatStatistics(lang, cur string, st ledger.Stats) string {
	var sb strings.Builder
	sb.WriteString(i18n.T(lang, "statistics_title"))
	sb.WriteString("\n\n")
	if st.Empty() {
		sb.WriteString(i18n.T(lang, "no_data"))
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s: %d\n", i18n.T(lang, "total_operations"), st.Count)
	fmt.Fprintf(&sb, "%s: %s\n", i18n.T(lang, "total_income"), ledger.FormatMoney(st.TotalIncome, cur))
	fmt.Fprintf(&sb, "%s: %s\n", i18n.T(lang, "total_expense"), ledger.FormatMoney(st.TotalExpense, cur))
	fmt.Fprintf(&sb, "%s: %s", i18n.T(lang, "current_balance"), ledger.FormatMoney(st.Balance(), cur))

	writeTop := func(titleKey string, list []ledger.CategoryStat) {
		if len(list) == 0 {
			return
		}
		sb.WriteString("\n\n")
		sb.WriteString(i18n.T(lang, titleKey))
		sb.WriteString(":")
		for i, c := range ledger.Top(list, topCategories) {
			fmt.Fprintf(&sb, "\n%d. %s: %s (%d %s)", i+1, c.Category,
				ledger.FormatMoney(c.Total, cur), c.Count, i18n.T(lang, "operations_count"))
		}
	}
	writeTop("top_income_categories", st.Income)
	writeTop("top_expense_categories", st.Expense)
	return sb.String()
}

// sendExport uploads the user's operations as CSV.
func (b *Bot) sendExport(ctx context.Context, tg TelegramAPI, in flow.Input) {
	ops, err := b.opRepo.ListByUser(ctx, in.UserID, nil)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to load operations for export")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return
	}
	if len(ops) == 0 {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "no_data")
		return
	}
	for i := range ops {
		ops[i].CreatedAt = ops[i].CreatedAt.In(b.loc)
	}

	data, err := export.OperationsCSV(in.Lang, ops)
	if errors.Is(err, export.ErrTooLarge) {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "file_too_large")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to render CSV export")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return
	}

	filename := export.OperationsFilename(b.now().In(b.loc))
	if err := sendFile(ctx, tg, in.ChatID, filename, i18n.T(in.Lang, "finance_operations"), data); err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to send CSV export")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
	}
}

// sendReminders lists pending reminders with due times in the bot's timezone.
func (b *Bot) sendReminders(ctx context.Context, tg TelegramAPI, in flow.Input) {
	list, err := b.reminders.List(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to list reminders")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuReminders, "error_generic")
		return
	}
	if len(list) == 0 {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuReminders, "reminders_empty")
		return
	}

	var sb strings.Builder
	sb.WriteString(i18n.T(in.Lang, "reminders_list_header"))
	for _, r := range list {
		sb.WriteString("\n")
		sb.WriteString(i18n.Tf(in.Lang, "reminder_line", r.DueAt.In(b.loc).Format("02.01.2006 15:04"), r.Task))
	}
	sendText(ctx, tg, in.ChatID, in.Lang, i18n.MenuReminders, sb.String())
}
