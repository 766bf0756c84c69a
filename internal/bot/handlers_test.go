package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/bot/mocks"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/state"
)

const ru = i18n.Russian

func label(key string) string {
	return i18n.T(ru, key)
}

func TestPrepareUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("ignores updates without a sender", func(t *testing.T) {
		b, _ := setupTestBot(t)
		require.False(t, b.prepareUpdate(ctx, mocks.NewUpdateBuilder().Build()))
		require.False(t, b.prepareUpdate(ctx, mocks.NewUpdateBuilder().WithMessage(1, 1, "hi").WithoutSender().Build()))
	})

	t.Run("registers user and picks language once", func(t *testing.T) {
		b, _ := setupTestBot(t)

		first := mocks.NewUpdateBuilder().WithMessage(3001, 3001, "hi").WithLanguageCode("en-US").Build()
		require.True(t, b.prepareUpdate(ctx, first))

		user, err := b.userRepo.GetByID(ctx, 3001)
		require.NoError(t, err)
		require.Equal(t, "testuser", user.Username)
		require.Equal(t, i18n.English, b.language(ctx, 3001))

		second := mocks.NewUpdateBuilder().WithMessage(3001, 3001, "hi").WithLanguageCode("ru").Build()
		require.True(t, b.prepareUpdate(ctx, second))
		require.Equal(t, i18n.English, b.language(ctx, 3001))
	})

	t.Run("unknown client language falls back to default", func(t *testing.T) {
		b, _ := setupTestBot(t)
		update := mocks.NewUpdateBuilder().WithMessage(3002, 3002, "hi").WithLanguageCode("").Build()
		require.True(t, b.prepareUpdate(ctx, update))
		require.Equal(t, i18n.DefaultLanguage, b.language(ctx, 3002))
	})
}

func TestHandleStartCore(t *testing.T) {
	ctx := context.Background()
	b, mockBot := setupTestBot(t)

	say(t, b, mockBot, 3101, label("add_operation"))
	msg := command(t, b, mockBot, 3101, "/start", b.handleStartCore)
	require.Contains(t, msg.Text, "Test")
	require.Equal(t, label("add_operation"), msg.Buttons()[0][0])

	conv, err := b.states.Get(ctx, 3101)
	require.NoError(t, err)
	require.False(t, conv.Active())

	t.Run("nil message", func(t *testing.T) {
		mb := mocks.NewMockBot()
		b.handleStartCore(ctx, mb, mocks.NewUpdateBuilder().Build())
		require.Equal(t, 0, mb.SentMessageCount())
	})
}

func TestHandleHelpAndCancel(t *testing.T) {
	b, mockBot := setupTestBot(t)

	msg := command(t, b, mockBot, 3201, "/help", b.handleHelpCore)
	require.Equal(t, label("help_text"), msg.Text)

	say(t, b, mockBot, 3201, label("add_reminder"))
	msg = command(t, b, mockBot, 3201, "/cancel", b.handleCancelCore)
	require.Equal(t, label("main_menu"), msg.Text)

	conv, err := b.states.Get(context.Background(), 3201)
	require.NoError(t, err)
	require.Equal(t, state.None, conv.State)
}

func TestHandleTextCore_Routing(t *testing.T) {
	b, mockBot := setupTestBot(t)

	t.Run("unknown command", func(t *testing.T) {
		msg := say(t, b, mockBot, 3301, "/whatever")
		require.Equal(t, label("unknown_command"), msg.Text)
	})

	t.Run("unknown text", func(t *testing.T) {
		msg := say(t, b, mockBot, 3301, "hello there")
		require.Equal(t, label("unknown_command"), msg.Text)
	})

	t.Run("back leaves a conversation", func(t *testing.T) {
		say(t, b, mockBot, 3301, label("add_operation"))
		say(t, b, mockBot, 3301, label("add_expense"))

		msg := say(t, b, mockBot, 3301, label("back"))
		require.Equal(t, label("main_menu"), msg.Text)

		conv, err := b.states.Get(context.Background(), 3301)
		require.NoError(t, err)
		require.False(t, conv.Active())
	})

	t.Run("menu label inside a conversation is conversation input", func(t *testing.T) {
		say(t, b, mockBot, 3301, label("add_operation"))
		msg := say(t, b, mockBot, 3301, label("balance"))
		require.Equal(t, label("please_select"), msg.Text)
	})
}

func TestEntryAndBalance(t *testing.T) {
	b, mockBot := setupTestBot(t)
	const user = 3401

	msg := say(t, b, mockBot, user, label("add_operation"))
	require.Equal(t, label("select_category"), msg.Text)

	msg = say(t, b, mockBot, user, label("add_expense"))
	require.Contains(t, msg.Text, "RUB")

	msg = say(t, b, mockBot, user, "abc")
	require.Equal(t, label("invalid_amount"), msg.Text)

	say(t, b, mockBot, user, "100,50")
	msg = say(t, b, mockBot, user, "lunch")
	require.Equal(t, label("operation_added"), msg.Text)

	say(t, b, mockBot, user, label("add_operation"))
	say(t, b, mockBot, user, label("add_income"))
	say(t, b, mockBot, user, "1000")
	say(t, b, mockBot, user, "salary")

	msg = say(t, b, mockBot, user, label("balance"))
	require.Equal(t, i18n.Tf(ru, "balance_text", "899.50 ₽", "1000.00 ₽", "100.50 ₽"), msg.Text)

	msg = say(t, b, mockBot, user, label("statistics"))
	require.Contains(t, msg.Text, "1000.00 ₽")
	require.Contains(t, msg.Text, label("top_expense_categories"))
}

func TestReportPeriod(t *testing.T) {
	b, mockBot := setupTestBot(t)
	const user = 3501

	msg := say(t, b, mockBot, user, label("report"))
	require.Equal(t, label("select_report_period"), msg.Text)

	msg = say(t, b, mockBot, user, "yesterday")
	require.Equal(t, label("please_select"), msg.Text)

	msg = say(t, b, mockBot, user, label("daily_report"))
	require.Contains(t, msg.Text, label("no_data"))
	require.Equal(t, 0, mockBot.SentDocumentCount())

	say(t, b, mockBot, user, label("add_operation"))
	say(t, b, mockBot, user, label("add_expense"))
	say(t, b, mockBot, user, "250")
	say(t, b, mockBot, user, "groceries")

	say(t, b, mockBot, user, label("report"))
	msg = say(t, b, mockBot, user, label("monthly_report"))
	require.Contains(t, msg.Text, label("add_expense"))
	require.Contains(t, msg.Text, "250.00 ₽")

	require.Equal(t, 1, mockBot.SentDocumentCount())
	doc := mockBot.LastSentDocument()
	require.True(t, strings.HasPrefix(doc.Filename, "chart_month_"))
	require.NotEmpty(t, doc.Data)
}

func TestExport(t *testing.T) {
	b, mockBot := setupTestBot(t)
	const user = 3601

	msg := say(t, b, mockBot, user, label("export"))
	require.Equal(t, label("no_data"), msg.Text)

	say(t, b, mockBot, user, label("add_operation"))
	say(t, b, mockBot, user, label("add_income"))
	say(t, b, mockBot, user, "42")
	say(t, b, mockBot, user, "gift")

	say(t, b, mockBot, user, label("export"))
	require.Equal(t, 1, mockBot.SentDocumentCount())
	doc := mockBot.LastSentDocument()
	require.True(t, strings.HasSuffix(doc.Filename, ".csv"))
	require.Equal(t, label("finance_operations"), doc.Caption)
	require.Contains(t, string(doc.Data), "gift")
	require.Contains(t, string(doc.Data), "42.00")
}

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("currency", func(t *testing.T) {
		b, mockBot := setupTestBot(t)
		const user = 3701

		msg := say(t, b, mockBot, user, label("change_currency"))
		require.Equal(t, i18n.Tf(ru, "select_currency", "RUB"), msg.Text)

		msg = say(t, b, mockBot, user, "XXX")
		require.Equal(t, label("please_select"), msg.Text)

		msg = say(t, b, mockBot, user, i18n.CurrencyLabel("RUB"))
		require.Equal(t, label("currency_not_changed"), msg.Text)

		say(t, b, mockBot, user, label("change_currency"))
		msg = say(t, b, mockBot, user, i18n.CurrencyLabel("USD"))
		require.Equal(t, i18n.Tf(ru, "currency_changed", "USD"), msg.Text)
		require.Equal(t, "USD", b.currency(ctx, user))
	})

	t.Run("language", func(t *testing.T) {
		b, mockBot := setupTestBot(t)
		const user = 3702

		msg := say(t, b, mockBot, user, label("language"))
		require.Equal(t, label("select_language"), msg.Text)

		msg = say(t, b, mockBot, user, i18n.T(i18n.English, "english_language"))
		require.Equal(t, i18n.T(i18n.English, "language_changed"), msg.Text)

		msg = say(t, b, mockBot, user, i18n.T(i18n.English, "help"))
		require.Equal(t, i18n.T(i18n.English, "help_text"), msg.Text)
	})

	t.Run("notifications", func(t *testing.T) {
		b, mockBot := setupTestBot(t)
		const user = 3703

		msg := say(t, b, mockBot, user, label("notifications"))
		require.Equal(t, i18n.Tf(ru, "notifications_current", label("notifications_status_on")), msg.Text)

		msg = say(t, b, mockBot, user, label("notifications_off"))
		require.Equal(t, label("notifications_status_off"), msg.Text)

		enabled, err := b.userRepo.GetNotifications(ctx, user)
		require.NoError(t, err)
		require.False(t, enabled)
	})
}

func TestGoalsAndReminders(t *testing.T) {
	b, mockBot := setupTestBot(t)
	const user = 3801

	msg := say(t, b, mockBot, user, label("view_goals"))
	require.Equal(t, label("goals_empty"), msg.Text)

	say(t, b, mockBot, user, label("add_goal"))
	say(t, b, mockBot, user, "Bike")
	say(t, b, mockBot, user, "1000")
	msg = say(t, b, mockBot, user, label("skip"))
	require.Equal(t, i18n.Tf(ru, "goal_added", "Bike"), msg.Text)

	say(t, b, mockBot, user, label("contribute_goal"))
	say(t, b, mockBot, user, "1")
	msg = say(t, b, mockBot, user, "250")
	require.Contains(t, msg.Text, "Bike")
	require.Contains(t, msg.Text, "25")

	msg = say(t, b, mockBot, user, label("view_goals"))
	require.Contains(t, msg.Text, "Bike")

	msg = say(t, b, mockBot, user, label("view_reminders"))
	require.Equal(t, label("reminders_empty"), msg.Text)

	say(t, b, mockBot, user, label("add_reminder"))
	say(t, b, mockBot, user, "Pay rent")
	say(t, b, mockBot, user, label("tomorrow"))
	msg = say(t, b, mockBot, user, "10:00")
	require.Contains(t, msg.Text, "10:00")

	msg = say(t, b, mockBot, user, label("view_reminders"))
	require.Contains(t, msg.Text, "Pay rent")
}

func TestSweepReminders(t *testing.T) {
	ctx := context.Background()
	b, mockBot := setupTestBot(t)
	const user = 3851

	say(t, b, mockBot, user, label("help"))
	_, err := b.reminders.Create(ctx, user, user, "Call the bank", time.Now().Add(time.Hour))
	require.NoError(t, err)

	mockBot.Reset()
	require.NoError(t, b.SweepReminders(ctx))
	require.Equal(t, 0, mockBot.SentMessageCount())

	b.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	require.NoError(t, b.SweepReminders(ctx))
	require.Equal(t, 1, mockBot.SentMessageCount())
	require.Equal(t, i18n.Tf(ru, "reminder_notification", "Call the bank"), mockBot.LastSentMessage().Text)

	require.NoError(t, b.SweepReminders(ctx))
	require.Equal(t, 1, mockBot.SentMessageCount())
}

func TestPomodoroMenu(t *testing.T) {
	b, mockBot := setupTestBot(t)
	const user = 3901

	msg := say(t, b, mockBot, user, label("pomodoro"))
	require.Equal(t, i18n.Tf(ru, "pomodoro_menu", 60, 60), msg.Text)

	msg = say(t, b, mockBot, user, label("pomodoro_start"))
	require.Equal(t, i18n.Tf(ru, "pomodoro_started", 60), msg.Text)
	require.True(t, b.pomodoro.Running(user))

	msg = say(t, b, mockBot, user, label("pomodoro_start"))
	require.Equal(t, label("pomodoro_already_running"), msg.Text)

	msg = say(t, b, mockBot, user, label("pomodoro_stop"))
	require.Equal(t, label("pomodoro_stopped"), msg.Text)

	msg = say(t, b, mockBot, user, label("pomodoro_stop"))
	require.Equal(t, label("pomodoro_not_running"), msg.Text)
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	b := &Bot{}
	require.Error(t, b.Notify(ctx, 1, "hi"))

	mockBot := mocks.NewMockBot()
	b.messageSender = mockBot
	require.NoError(t, b.Notify(ctx, 7, "hi"))
	require.Equal(t, "hi", mockBot.LastSentMessage().Text)
}
