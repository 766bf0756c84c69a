package bot

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/finance-bot/internal/bot/mocks"
	"gitlab.com/yelinaung/finance-bot/internal/flow"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
)

// TelegramAPI is the subset of the Telegram client the handlers use. It is
// declared next to MockBot so tests can depend on it without a cycle.
type TelegramAPI = mocks.TelegramAPI

var _ TelegramAPI = (*bot.Bot)(nil)

// replyKeyboard converts button rows to a Telegram reply keyboard.
func replyKeyboard(rows [][]string) *tgmodels.ReplyKeyboardMarkup {
	keyboard := make([][]tgmodels.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgmodels.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgmodels.KeyboardButton{Text: label})
		}
		keyboard = append(keyboard, buttons)
	}
	return &tgmodels.ReplyKeyboardMarkup{Keyboard: keyboard, ResizeKeyboard: true}
}

// sendReply sends r to chatID. A reply without a keyboard keeps the current one.
func sendReply(ctx context.Context, tg TelegramAPI, chatID int64, r flow.Reply) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   r.Text,
	}
	if r.Keyboard != nil {
		params.ReplyMarkup = replyKeyboard(r.Keyboard)
	}
	if _, err := tg.SendMessage(ctx, params); err != nil {
		logger.Log.Error().Err(err).Str("chat_id", logger.HashChatID(chatID)).Msg("Failed to send message")
	}
}

// sendText sends a localized message with the given menu.
func sendText(ctx context.Context, tg TelegramAPI, chatID int64, lang string, menu i18n.Menu, text string) {
	sendReply(ctx, tg, chatID, flow.Reply{Text: text, Keyboard: i18n.Keyboard(lang, menu)})
}

// sendKey sends the message for key, formatted with args when present.
func sendKey(ctx context.Context, tg TelegramAPI, chatID int64, lang string, menu i18n.Menu, key string, args ...any) {
	text := i18n.T(lang, key)
	if len(args) > 0 {
		text = i18n.Tf(lang, key, args...)
	}
	sendText(ctx, tg, chatID, lang, menu, text)
}

// sendFile uploads data as a document.
func sendFile(ctx context.Context, tg TelegramAPI, chatID int64, filename, caption string, data []byte) error {
	_, err := tg.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &tgmodels.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption: caption,
	})
	return err
}

// extractCommandArgs returns the text after command, dropping a trailing
// @botname mention attached to the command.
func extractCommandArgs(text, command string) string {
	args := strings.TrimSpace(strings.TrimPrefix(text, command))
	if strings.HasPrefix(args, "@") {
		if spaceIdx := strings.Index(args, " "); spaceIdx != -1 {
			args = strings.TrimSpace(args[spaceIdx:])
		} else {
			args = ""
		}
	}
	return args
}
