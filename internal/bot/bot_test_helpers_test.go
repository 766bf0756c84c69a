package bot

import (
	"context"
	"testing"
	"time"

	tgmodels "github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/bot/mocks"
	"gitlab.com/yelinaung/finance-bot/internal/config"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
)

func init() {
	logger.InitHashSaltForTesting("bot-test-salt-0123456789")
}

// testConfig returns a configuration suitable for handler tests.
func testConfig() *config.Config {
	return &config.Config{
		TelegramBotToken:    "test-token",
		DatabaseURL:         "test-url",
		Timezone:            "UTC",
		BaseCurrency:        "RUB",
		DefaultLanguage:     i18n.Russian,
		StateBackend:        config.StateBackendMemory,
		MaxReminderAttempts: 5,
		PomodoroWork:        time.Hour,
		PomodoroBreak:       time.Hour,
	}
}

// setupTestBot creates a Bot backed by a rolled-back transaction.
func setupTestBot(t *testing.T) (*Bot, *mocks.MockBot) {
	t.Helper()
	tx := database.TestTx(t)
	mockBot := mocks.NewMockBot()
	b := newBot(testConfig(), tx, mockBot)
	t.Cleanup(b.Close)
	return b, mockBot
}

// say runs an update through the middleware and the text router.
func say(t *testing.T, b *Bot, mockBot *mocks.MockBot, userID int64, text string) *mocks.SentMessage {
	t.Helper()
	ctx := context.Background()
	update := mocks.MessageUpdate(userID, userID, text)
	require.True(t, b.prepareUpdate(ctx, update))
	b.handleTextCore(ctx, mockBot, update)
	msg := mockBot.LastSentMessage()
	require.NotNil(t, msg)
	return msg
}

// command runs a command update through the middleware and handler.
func command(t *testing.T, b *Bot, mockBot *mocks.MockBot, userID int64, text string,
	handler func(context.Context, TelegramAPI, *tgmodels.Update),
) *mocks.SentMessage {
	t.Helper()
	ctx := context.Background()
	update := mocks.CommandUpdate(userID, userID, text)
	require.True(t, b.prepareUpdate(ctx, update))
	handler(ctx, mockBot, update)
	return mockBot.LastSentMessage()
}
