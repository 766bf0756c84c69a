package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/finance-bot/internal/export"
	"gitlab.com/yelinaung/finance-bot/internal/flow"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/ledger"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/repository"
)

// adminTopCategories is how many categories per kind the admin stats list.
const adminTopCategories = 5

// requireAdmin reports whether the sender is an admin, telling them otherwise.
func (b *Bot) requireAdmin(ctx context.Context, tg TelegramAPI, in flow.Input) bool {
	ok, err := b.adminRepo.IsAdmin(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to check admin status")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return false
	}
	if !ok {
		logger.Log.Warn().Str("user_id", logger.HashUserID(in.UserID)).Msg("Admin access denied")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "admin_only")
		return false
	}
	return true
}

// handleAdmin handles the /admin command.
func (b *Bot) handleAdmin(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleAdminCore(ctx, tgBot, update)
}

// handleAdminCore shows the admin panel.
func (b *Bot) handleAdminCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if !hasSender(update) {
		return
	}
	in := b.input(ctx, update)
	if !b.requireAdmin(ctx, tg, in) {
		return
	}
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "admin_panel")
}

// handleAdminMenu dispatches admin panel buttons. It reports false for other text.
func (b *Bot) handleAdminMenu(ctx context.Context, tg TelegramAPI, in flow.Input) bool {
	key := i18n.LabelKey(in.Text, "admin_stats", "admin_export")
	if key == "" {
		return false
	}
	if !b.requireAdmin(ctx, tg, in) {
		return true
	}

	switch key {
	case "admin_stats":
		b.sendAdminStats(ctx, tg, in)
	case "admin_export":
		b.sendAdminExport(ctx, tg, in)
	}
	return true
}

// sendAdminStats replies with user count, global totals and top categories.
// Totals are summed as stored, across display currencies.
func (b *Bot) sendAdminStats(ctx context.Context, tg TelegramAPI, in flow.Input) {
	text, err := b.adminStats(ctx, in.Lang)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to compute admin stats")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "error_generic")
		return
	}
	sendText(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, text)
}

func (b *Bot) adminStats(ctx context.Context, lang string) (string, error) {
	users, err := b.userRepo.Count(ctx)
	if err != nil {
		return "", err
	}
	totals, err := b.opRepo.GlobalTotals(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(i18n.Tf(lang, "admin_stats_text", users, totals.Count,
		totals.Income.StringFixed(2), totals.Expense.StringFixed(2)))

	sections := []struct {
		kind  models.OperationKind
		title string
	}{
		{models.KindIncome, "top_income_categories"},
		{models.KindExpense, "top_expense_categories"},
	}
	for _, sec := range sections {
		top, err := b.opRepo.TopCategories(ctx, sec.kind, adminTopCategories)
		if err != nil {
			return "", err
		}
		if len(top) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n\n%s:", i18n.T(lang, sec.title))
		for i, c := range top {
			fmt.Fprintf(&sb, "\n%d. %s: %s (%d %s)", i+1, c.Category,
				c.Total.StringFixed(2), c.Count, i18n.T(lang, "operations_count"))
		}
	}
	return sb.String(), nil
}

// sendAdminExport uploads the XLSX workbook of all users, operations and admins.
func (b *Bot) sendAdminExport(ctx context.Context, tg TelegramAPI, in flow.Input) {
	data, err := b.adminWorkbook(ctx)
	if errors.Is(err, export.ErrTooLarge) {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "file_too_large")
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to build admin export")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "error_generic")
		return
	}

	filename := export.WorkbookFilename(b.now().In(b.loc))
	if err := sendFile(ctx, tg, in.ChatID, filename, i18n.T(in.Lang, "admin_export_caption"), data); err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to send admin export")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "error_generic")
	}
}

func (b *Bot) adminWorkbook(ctx context.Context) ([]byte, error) {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ops, err := b.opRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := b.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return export.AdminWorkbook(users, ops, admins)
}

// handleUserStats handles the /user_stats command.
func (b *Bot) handleUserStats(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleUserStatsCore(ctx, tgBot, update)
}

// handleUserStatsCore reports one user's operation count and balance.
func (b *Bot) handleUserStatsCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if !hasSender(update) {
		return
	}
	in := b.input(ctx, update)
	if !b.requireAdmin(ctx, tg, in) {
		return
	}

	targetID, err := strconv.ParseInt(extractCommandArgs(in.Text, "/user_stats"), 10, 64)
	if err != nil {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "admin_user_stats_usage")
		return
	}

	if _, err := b.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "admin_user_not_found")
			return
		}
		logger.Log.Error().Err(err).Int64("target_id", targetID).Msg("Failed to load user")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "error_generic")
		return
	}

	summary, err := b.ledger.Balance(ctx, targetID, ledger.All)
	if err != nil {
		logger.Log.Error().Err(err).Int64("target_id", targetID).Msg("Failed to compute user balance")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "error_generic")
		return
	}

	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "admin_user_stats",
		targetID, summary.Count, ledger.FormatMoney(summary.Balance(), b.currency(ctx, targetID)))
}

// handleAddAdmin handles the /add_admin command.
func (b *Bot) handleAddAdmin(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleAddAdminCore(ctx, tgBot, update)
}

// handleAddAdminCore grants admin access to a registered user. Only
// superadmins may do this.
func (b *Bot) handleAddAdminCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if !hasSender(update) {
		return
	}
	in := b.input(ctx, update)

	super, err := b.adminRepo.IsSuperAdmin(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to check superadmin status")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return
	}
	if !super && !b.cfg.IsSuperAdmin(in.UserID) {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "admin_only")
		return
	}

	targetID, err := strconv.ParseInt(extractCommandArgs(in.Text, "/add_admin"), 10, 64)
	if err != nil {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "admin_add_usage")
		return
	}

	if err := b.adminRepo.Add(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "admin_user_not_found")
			return
		}
		logger.Log.Error().Err(err).Int64("target_id", targetID).Msg("Failed to add admin")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "error_generic")
		return
	}

	logger.Log.Info().
		Str("user_id", logger.HashUserID(in.UserID)).
		Str("target_id", logger.HashUserID(targetID)).
		Msg("Admin added")
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuAdmin, "admin_added", targetID)
}
