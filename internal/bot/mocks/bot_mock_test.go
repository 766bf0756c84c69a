package mocks

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
)

func TestMockBot_SendMessage(t *testing.T) {
	t.Parallel()

	t.Run("captures sent message", func(t *testing.T) {
		t.Parallel()

		mockBot := NewMockBot()
		ctx := context.Background()

		msg, err := mockBot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    int64(12345),
			Text:      "Hello, World!",
			ParseMode: models.ParseModeHTML,
		})

		require.NoError(t, err)
		require.NotNil(t, msg)
		require.Equal(t, 1000, msg.ID)
		require.Equal(t, int64(12345), msg.Chat.ID)

		require.Equal(t, 1, mockBot.SentMessageCount())
		last := mockBot.LastSentMessage()
		require.NotNil(t, last)
		require.Equal(t, int64(12345), last.ChatID)
		require.Equal(t, "Hello, World!", last.Text)
		require.Equal(t, models.ParseModeHTML, last.ParseMode)
	})

	t.Run("captures reply keyboard", func(t *testing.T) {
		t.Parallel()

		mockBot := NewMockBot()
		_, err := mockBot.SendMessage(context.Background(), &bot.SendMessageParams{
			ChatID: int64(1),
			Text:   "menu",
			ReplyMarkup: &models.ReplyKeyboardMarkup{
				Keyboard: [][]models.KeyboardButton{{{Text: "A"}, {Text: "B"}}, {{Text: "C"}}},
			},
		})
		require.NoError(t, err)
		require.Equal(t, [][]string{{"A", "B"}, {"C"}}, mockBot.LastSentMessage().Buttons())
	})

	t.Run("returns error when configured", func(t *testing.T) {
		t.Parallel()

		mockBot := NewMockBot()
		mockBot.SendMessageError = errors.New("send failed")

		_, err := mockBot.SendMessage(context.Background(), &bot.SendMessageParams{
			ChatID: int64(123),
			Text:   "test",
		})

		require.Error(t, err)
		require.Equal(t, "send failed", err.Error())
		require.Equal(t, 0, mockBot.SentMessageCount())
	})

	t.Run("fails only configured chats", func(t *testing.T) {
		t.Parallel()

		mockBot := NewMockBot()
		mockBot.FailChats[7] = errors.New("blocked")

		_, err := mockBot.SendMessage(context.Background(), &bot.SendMessageParams{ChatID: int64(7), Text: "a"})
		require.Error(t, err)
		_, err = mockBot.SendMessage(context.Background(), &bot.SendMessageParams{ChatID: int64(8), Text: "b"})
		require.NoError(t, err)
		require.Equal(t, 1, mockBot.SentMessageCount())
	})

	t.Run("increments message ID", func(t *testing.T) {
		t.Parallel()

		mockBot := NewMockBot()
		ctx := context.Background()

		msg1, err := mockBot.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "a"})
		require.NoError(t, err)
		msg2, err := mockBot.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(1), Text: "b"})
		require.NoError(t, err)

		require.Equal(t, 1000, msg1.ID)
		require.Equal(t, 1001, msg2.ID)
	})
}

func TestMockBot_SendDocument(t *testing.T) {
	t.Parallel()

	t.Run("captures upload", func(t *testing.T) {
		t.Parallel()

		mockBot := NewMockBot()
		_, err := mockBot.SendDocument(context.Background(), &bot.SendDocumentParams{
			ChatID:   int64(5),
			Document: &models.InputFileUpload{Filename: "a.csv", Data: bytes.NewReader([]byte("x,y"))},
			Caption:  "export",
		})
		require.NoError(t, err)
		require.Equal(t, 1, mockBot.SentDocumentCount())
		doc := mockBot.LastSentDocument()
		require.Equal(t, "a.csv", doc.Filename)
		require.Equal(t, "export", doc.Caption)
		require.Equal(t, []byte("x,y"), doc.Data)
	})

	t.Run("returns error when configured", func(t *testing.T) {
		t.Parallel()

		mockBot := NewMockBot()
		mockBot.SendDocumentError = errors.New("too big")
		_, err := mockBot.SendDocument(context.Background(), &bot.SendDocumentParams{ChatID: int64(5)})
		require.Error(t, err)
		require.Zero(t, mockBot.SentDocumentCount())
	})
}

func TestMockBot_Reset(t *testing.T) {
	t.Parallel()

	mockBot := NewMockBot()
	_, _ = mockBot.SendMessage(context.Background(), &bot.SendMessageParams{ChatID: int64(1), Text: "a"})
	mockBot.SendMessageError = errors.New("x")
	mockBot.Reset()

	require.Zero(t, mockBot.SentMessageCount())
	require.NoError(t, mockBot.SendMessageError)
	require.Nil(t, mockBot.LastSentMessage())
	require.Nil(t, mockBot.LastSentDocument())
}

func TestChatIDToInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int64", int64(5), 5},
		{"int", 6, 6},
		{"string", "@channel", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, chatIDToInt64(tt.in))
		})
	}
}
