package flow

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/reminders"
	"gitlab.com/yelinaung/finance-bot/internal/state"
)

// StartReminder begins the task, period, time sequence.
func (e *Engine) StartReminder(ctx context.Context, in Input) Reply {
	return e.advance(ctx, in, state.New(state.AwaitingReminderTask),
		reply(in.Lang, "enter_reminder_task", i18n.MenuBack))
}

func (e *Engine) onReminderTask(ctx context.Context, in Input, conv state.Conversation) Reply {
	task, err := reminders.ValidateTask(in.Text)
	if err != nil {
		if utf8.RuneCountInString(strings.TrimSpace(in.Text)) > models.MaxReminderTaskLength {
			return reply(in.Lang, "task_too_long", i18n.MenuBack, models.MaxReminderTaskLength)
		}
		return reply(in.Lang, "enter_reminder_task", i18n.MenuBack)
	}
	next := conv.With(state.AwaitingReminderPeriod, keyTask, task)
	return e.advance(ctx, in, next, reply(in.Lang, "select_reminder_period", i18n.MenuReminderPeriod))
}

func (e *Engine) onReminderPeriod(ctx context.Context, in Input, conv state.Conversation) Reply {
	key := i18n.LabelKey(in.Text, string(reminders.Today), string(reminders.Tomorrow), string(reminders.NextWeek))
	if key == "" {
		return reply(in.Lang, "please_select", i18n.MenuReminderPeriod)
	}
	next := conv.With(state.AwaitingTime, keyPeriod, key)
	return e.advance(ctx, in, next, reply(in.Lang, "enter_time", i18n.MenuBack))
}

func (e *Engine) onReminderTime(ctx context.Context, in Input, conv state.Conversation) Reply {
	clock, err := reminders.ParseClock(in.Text)
	if err != nil {
		return reply(in.Lang, "invalid_time", i18n.MenuBack)
	}

	due, err := reminders.DueAt(reminders.Period(conv.Data[keyPeriod]), clock, e.now().In(e.loc))
	switch {
	case errors.Is(err, reminders.ErrPastTime):
		return reply(in.Lang, "past_time", i18n.MenuBack)
	case err != nil:
		e.finish(ctx, in.UserID)
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Corrupt reminder conversation")
		return reply(in.Lang, "error_generic", i18n.MenuMain)
	}

	defer e.finish(ctx, in.UserID)
	rem, err := e.reminders.Create(ctx, in.UserID, in.ChatID, conv.Data[keyTask], due)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to save reminder")
		return reply(in.Lang, "error_generic", i18n.MenuMain)
	}

	logger.Log.Info().
		Str("user_id", logger.HashUserID(in.UserID)).
		Int64("reminder_id", rem.ID).
		Time("due_at", due).
		Msg("Reminder scheduled")
	return reply(in.Lang, "reminder_added", i18n.MenuMain, due.Format("02.01.2006 15:04"))
}
