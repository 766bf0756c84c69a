package bot

import (
	"context"

	"gitlab.com/yelinaung/finance-bot/internal/flow"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/state"
)

// startCurrency shows the currency picker with the current choice.
func (b *Bot) startCurrency(ctx context.Context, tg TelegramAPI, in flow.Input) {
	if !b.setState(ctx, tg, in, state.AwaitingCurrency) {
		return
	}
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuCurrency, "select_currency", b.currency(ctx, in.UserID))
}

// onCurrency switches the display currency, converting stored operations.
func (b *Bot) onCurrency(ctx context.Context, tg TelegramAPI, in flow.Input) {
	code := i18n.CurrencyFromLabel(in.Text)
	if code == "" {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuCurrency, "please_select")
		return
	}
	b.cancel(ctx, in.UserID)

	prev, changed, err := b.converter.SwitchCurrency(ctx, in.UserID, code)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("user_id", logger.HashUserID(in.UserID)).
			Str("currency", code).
			Msg("Failed to switch currency")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, "currency_change_failed")
		return
	}
	if !changed {
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, "currency_not_changed")
		return
	}

	logger.Log.Info().
		Str("user_id", logger.HashUserID(in.UserID)).
		Str("from", prev).
		Str("to", code).
		Msg("Currency switched")
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, "currency_changed", code)
}

// onLanguage stores the chosen language and answers in it.
func (b *Bot) onLanguage(ctx context.Context, tg TelegramAPI, in flow.Input) {
	var lang string
	switch i18n.LabelKey(in.Text, "russian_language", "english_language") {
	case "russian_language":
		lang = i18n.Russian
	case "english_language":
		lang = i18n.English
	default:
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuLanguage, "please_select")
		return
	}
	b.cancel(ctx, in.UserID)

	if err := b.userRepo.SetLanguage(ctx, in.UserID, lang); err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to set language")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, "error_generic")
		return
	}
	sendKey(ctx, tg, in.ChatID, lang, i18n.MenuSettings, "language_changed")
}

// startNotifications shows the current notification status and the toggle.
func (b *Bot) startNotifications(ctx context.Context, tg TelegramAPI, in flow.Input) {
	enabled, err := b.userRepo.GetNotifications(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to load notification setting")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, "error_generic")
		return
	}
	if !b.setState(ctx, tg, in, state.AwaitingNotificationChoice) {
		return
	}
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuNotifications, "notifications_current",
		i18n.T(in.Lang, notificationStatusKey(enabled)))
}

// onNotificationChoice stores the toggle.
func (b *Bot) onNotificationChoice(ctx context.Context, tg TelegramAPI, in flow.Input) {
	var enabled bool
	switch i18n.LabelKey(in.Text, "notifications_on", "notifications_off") {
	case "notifications_on":
		enabled = true
	case "notifications_off":
		enabled = false
	default:
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuNotifications, "please_select")
		return
	}
	b.cancel(ctx, in.UserID)

	if err := b.userRepo.SetNotifications(ctx, in.UserID, enabled); err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to set notifications")
		sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, "error_generic")
		return
	}
	sendKey(ctx, tg, in.ChatID, in.Lang, i18n.MenuSettings, notificationStatusKey(enabled))
}

func notificationStatusKey(enabled bool) string {
	if enabled {
		return "notifications_status_on"
	}
	return "notifications_status_off"
}
