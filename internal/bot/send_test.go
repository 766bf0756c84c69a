package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/bot/mocks"
	"gitlab.com/yelinaung/finance-bot/internal/flow"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/ledger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

func TestExtractCommandArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		command string
		want    string
	}{
		{"no args", "/user_stats", "/user_stats", ""},
		{"simple arg", "/user_stats 42", "/user_stats", "42"},
		{"extra spaces", "/add_admin    7  ", "/add_admin", "7"},
		{"bot mention only", "/user_stats@finance_bot", "/user_stats", ""},
		{"bot mention with arg", "/user_stats@finance_bot 42", "/user_stats", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, extractCommandArgs(tt.text, tt.command))
		})
	}
}

func TestReplyKeyboard(t *testing.T) {
	t.Parallel()

	kb := replyKeyboard([][]string{{"a", "b"}, {"c"}})
	require.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 2)
	require.Equal(t, "b", kb.Keyboard[0][1].Text)
	require.Equal(t, "c", kb.Keyboard[1][0].Text)
}

func TestSendReply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("with keyboard", func(t *testing.T) {
		t.Parallel()
		mockBot := mocks.NewMockBot()
		sendReply(ctx, mockBot, 10, flow.Reply{Text: "hi", Keyboard: i18n.Keyboard(i18n.English, i18n.MenuMain)})

		msg := mockBot.LastSentMessage()
		require.NotNil(t, msg)
		require.Equal(t, "hi", msg.Text)
		require.Equal(t, "Add operation", msg.Buttons()[0][0])
	})

	t.Run("without keyboard", func(t *testing.T) {
		t.Parallel()
		mockBot := mocks.NewMockBot()
		sendReply(ctx, mockBot, 10, flow.Reply{Text: "hi"})
		require.Nil(t, mockBot.LastSentMessage().ReplyMarkup)
	})

	t.Run("send failure is swallowed", func(t *testing.T) {
		t.Parallel()
		mockBot := mocks.NewMockBot()
		mockBot.SendMessageError = errors.New("network down")
		sendReply(ctx, mockBot, 10, flow.Reply{Text: "hi"})
		require.Equal(t, 0, mockBot.SentMessageCount())
	})
}

func TestSendFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockBot := mocks.NewMockBot()
	require.NoError(t, sendFile(ctx, mockBot, 10, "a.csv", "caption", []byte("x,y")))

	doc := mockBot.LastSentDocument()
	require.NotNil(t, doc)
	require.Equal(t, "a.csv", doc.Filename)
	require.Equal(t, "caption", doc.Caption)
	require.Equal(t, []byte("x,y"), doc.Data)

	mockBot.SendDocumentError = errors.New("too big")
	require.Error(t, sendFile(ctx, mockBot, 10, "a.csv", "", nil))
}

func testOps() []models.Operation {
	op := func(kind models.OperationKind, amount, cat string) models.Operation {
		return models.Operation{Kind: kind, Amount: decimal.RequireFromString(amount), Category: cat}
	}
	return []models.Operation{
		op(models.KindIncome, "1000", "Salary"),
		op(models.KindExpense, "100.50", "Food"),
		op(models.KindExpense, "50", "Food"),
		op(models.KindExpense, "300", "Rent"),
		op(models.KindExpense, "10", "Taxi"),
		op(models.KindExpense, "5", "Coffee"),
	}
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	t.Run("empty period", func(t *testing.T) {
		t.Parallel()
		text := formatReport(i18n.English, "week", "USD", ledger.Summarize(nil))
		require.Contains(t, text, "week")
		require.Contains(t, text, "No data")
	})

	t.Run("totals and categories", func(t *testing.T) {
		t.Parallel()
		text := formatReport(i18n.English, "month", "RUB", ledger.Summarize(testOps()))
		require.Contains(t, text, "Total income: 1000.00 ₽")
		require.Contains(t, text, "Total expense: 465.50 ₽")
		require.Contains(t, text, "535.00 ₽")
		require.Contains(t, text, "Food: 150.50 ₽")
		require.Less(t, strings.Index(text, "Rent"), strings.Index(text, "Food"))
	})
}

func TestFormatStatistics(t *testing.T) {
	t.Parallel()

	text := formatStatistics(i18n.English, "RUB", ledger.Statistics(testOps()))
	require.Contains(t, text, "1. Rent: 300.00 ₽ (1 ")
	require.Contains(t, text, "2. Food: 150.50 ₽ (2 ")
	require.Contains(t, text, "3. Taxi")
	require.NotContains(t, text, "Coffee")

	empty := formatStatistics(i18n.English, "RUB", ledger.Statistics(nil))
	require.Contains(t, empty, "No data")
}
