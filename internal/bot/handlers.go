package bot

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/finance-bot/internal/flow"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/state"
)

// input builds the flow input for a message update.
func (b *Bot) input(ctx context.Context, update *tgmodels.Update) flow.Input {
	msg := update.Message
	return flow.Input{
		UserID: msg.From.ID,
		ChatID: msg.Chat.ID,
		Lang:   b.language(ctx, msg.From.ID),
		Text:   strings.TrimSpace(msg.Text),
	}
}

// hasSender reports whether the update carries a message with a sender.
func hasSender(update *tgmodels.Update) bool {
	return update.Message != nil && update.Message.From != nil
}

// handleStart handles the /start command.
func (b *Bot) handleStart(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleStartCore(ctx, tgBot, update)
}

// handleStartCore greets the user, drops any conversation and shows the main menu.
func (b *Bot) handleStartCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if !hasSender(update) {
		return
	}
	in := b.input(ctx, update)
	b.cancel(ctx, in.UserID)

	name := update.Message.From.FirstName
	if name == "" {
		name = update.Message.From.Username
	}
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "welcome_message", name)
}

// handleHelp handles the /help command.
func (b *Bot) handleHelp(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleHelpCore(ctx, tgBot, update)
}

// handleHelpCore sends the help text.
func (b *Bot) handleHelpCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if !hasSender(update) {
		return
	}
	in := b.input(ctx, update)
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "help_text")
}

// handleCancel handles the /cancel command.
func (b *Bot) handleCancel(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleCancelCore(ctx, tgBot, update)
}

// handleCancelCore leaves any conversation and returns to the main menu.
func (b *Bot) handleCancelCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if !hasSender(update) {
		return
	}
	in := b.input(ctx, update)
	b.cancel(ctx, in.UserID)
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "main_menu")
}

func (b *Bot) cancel(ctx context.Context, userID int64) {
	if err := b.flow.Cancel(ctx, userID); err != nil {
		logger.Log.Warn().Err(err).Str("user_id", logger.HashUserID(userID)).Msg("Failed to clear conversation state")
	}
}

// setState stores a bot-owned conversation step. It reports false after
// telling the user something went wrong.
func (b *Bot) setState(ctx context.Context, tg TelegramAPI, in flow.Input, s state.State) bool {
	if err := b.states.Set(ctx, in.UserID, state.New(s)); err != nil {
		logger.Log.Error().Err(err).
			Str("user_id", logger.HashUserID(in.UserID)).
			Str("state", string(s)).
			Msg("Failed to save conversation state")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return false
	}
	return true
}

// handleTextCore routes a text message. Commands come first, then the back
// button, then an active conversation, then the menu buttons.
func (b *Bot) handleTextCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if !hasSender(update) {
		return
	}
	in := b.input(ctx, update)

	if in.Text == "" || strings.HasPrefix(in.Text, "/") {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "unknown_command")
		return
	}

	if i18n.IsLabel(in.Text, "back") {
		b.cancel(ctx, in.UserID)
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "main_menu")
		return
	}

	conv, err := b.states.Get(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to load conversation state")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "error_generic")
		return
	}

	switch conv.State {
	case state.AwaitingReportPeriod:
		b.onReportPeriod(ctx, tg, in)
		return
	case state.AwaitingCurrency:
		b.onCurrency(ctx, tg, in)
		return
	case state.AwaitingLanguage:
		b.onLanguage(ctx, tg, in)
		return
	case state.AwaitingNotificationChoice:
		b.onNotificationChoice(ctx, tg, in)
		return
	}

	if r, ok := b.flow.Handle(ctx, in); ok {
		sendReply(ctx, tg, in.ChatID, r)
		return
	}

	if b.handleMenu(ctx, tg, in) {
		return
	}
	if b.handleAdminMenu(ctx, tg, in) {
		return
	}

	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "unknown_command")
}

// handleMenu dispatches a menu button. It reports false for other text.
func (b *Bot) handleMenu(ctx context.Context, tg TelegramAPI, in flow.Input) bool {
	key := i18n.LabelKey(in.Text,
		"add_operation", "balance", "report", "statistics", "goals", "reminders",
		"pomodoro", "export", "settings", "help",
		"change_currency", "language", "notifications",
		"add_goal", "view_goals", "contribute_goal", "complete_goal",
		"add_reminder", "view_reminders",
		"pomodoro_start", "pomodoro_stop",
	)

	switch key {
	case "add_operation":
		sendReply(ctx, tg, in.ChatID, b.flow.StartEntry(ctx, in))
	case "balance":
		b.sendBalance(ctx, tg, in)
	case "report":
		if b.setState(ctx, tg, in, state.AwaitingReportPeriod) {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuReport, "select_report_period")
		}
	case "statistics":
		b.sendStatistics(ctx, tg, in)
	case "export":
		b.sendExport(ctx, tg, in)
	case "settings":
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, "settings_menu")
	case "help":
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuMain, "help_text")
	case "change_currency":
		b.startCurrency(ctx, tg, in)
	case "language":
		if b.setState(ctx, tg, in, state.AwaitingLanguage) {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuLanguage, "select_language")
		}
	case "notifications":
		b.startNotifications(ctx, tg, in)
	case "goals":
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuGoals, "goals_menu")
	case "add_goal":
		sendReply(ctx, tg, in.ChatID, b.flow.StartGoal(ctx, in))
	case "view_goals":
		sendReply(ctx, tg, in.ChatID, b.flow.ListGoals(ctx, in))
	case "contribute_goal":
		sendReply(ctx, tg, in.ChatID, b.flow.StartContribution(ctx, in))
	case "complete_goal":
		sendReply(ctx, tg, in.ChatID, b.flow.StartCompletion(ctx, in))
	case "reminders":
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuReminders, "reminders_menu")
	case "add_reminder":
		sendReply(ctx, tg, in.ChatID, b.flow.StartReminder(ctx, in))
	case "view_reminders":
		b.sendReminders(ctx, tg, in)
	case "pomodoro":
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuPomodoro, "pomodoro_menu",
			b.pomodoro.WorkMinutes(), b.pomodoro.RestMinutes())
	case "pomodoro_start":
		if b.pomodoro.Start(in.UserID, in.ChatID, in.Lang) {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuPomodoro, "pomodoro_started", b.pomodoro.WorkMinutes())
		} else {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuPomodoro, "pomodoro_already_running")
		}
	case "pomodoro_stop":
		if b.pomodoro.Stop(in.UserID) {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuPomodoro, "pomodoro_stopped")
		} else {
			sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuPomodoro, "pomodoro_not_running")
		}
	default:
		return false
	}
	return true
}
