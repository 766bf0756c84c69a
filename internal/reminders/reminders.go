// Package reminders schedules one-shot reminders and delivers them when due.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/telemetry"
)

// ErrInvalidTask is returned for empty or oversized reminder text.
var ErrInvalidTask = errors.New("invalid reminder task")

// Store persists reminders.
type Store interface {
	Create(ctx context.Context, rem *models.Reminder) error
	ListPending(ctx context.Context, userID int64) ([]models.Reminder, error)
	ListDue(ctx context.Context, now time.Time, maxAttempts int) ([]models.Reminder, error)
	MarkCompleted(ctx context.Context, id int64) (bool, error)
	RecordFailure(ctx context.Context, id int64) (int, error)
}

// Languages resolves a user's language.
type Languages interface {
	GetLanguage(ctx context.Context, userID int64) (string, error)
}

// Notifier delivers a text message to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// Service creates and delivers reminders.
type Service struct {
	store       Store
	langs       Languages
	notifier    Notifier
	maxAttempts int
}

// NewService creates a reminder Service. Deliveries failing maxAttempts times are abandoned.
func NewService(store Store, langs Languages, notifier Notifier, maxAttempts int) *Service {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Service{store: store, langs: langs, notifier: notifier, maxAttempts: maxAttempts}
}

// ValidateTask trims and checks reminder text.
func ValidateTask(task string) (string, error) {
	task = strings.TrimSpace(task)
	if task == "" || utf8.RuneCountInString(task) > models.MaxReminderTaskLength {
		return "", ErrInvalidTask
	}
	return task, nil
}

// Create stores a reminder for userID in chatID.
func (s *Service) Create(ctx context.Context, userID, chatID int64, task string, due time.Time) (*models.Reminder, error) {
	task, err := ValidateTask(task)
	if err != nil {
		return nil, err
	}
	rem := &models.Reminder{UserID: userID, ChatID: chatID, Task: task, DueAt: due}
	if err := s.store.Create(ctx, rem); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return rem, nil
}

// List returns the user's pending reminders.
func (s *Service) List(ctx context.Context, userID int64) ([]models.Reminder, error) {
	list, err := s.store.ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return list, nil
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Sent      int
	Failed    int
	Abandoned int
}

// Sweep delivers every due reminder. A reminder is marked completed only after
// a successful send; failed sends are retried on later sweeps until the
// attempt limit is reached.
func (s *Service) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	due, err := s.store.ListDue(ctx, now, s.maxAttempts)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to list due reminders: %w", err)
	}

	var res SweepResult
	for _, rem := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		s.deliver(ctx, rem, &res)
	}
	return res, nil
}

func (s *Service) deliver(ctx context.Context, rem models.Reminder, res *SweepResult) {
	lang, err := s.langs.GetLanguage(ctx, rem.UserID)
	if err != nil || !i18n.Supported(lang) {
		lang = i18n.DefaultLanguage
	}

	sendErr := s.notifier.Notify(ctx, rem.ChatID, i18n.Tf(lang, "reminder_notification", rem.Task))
	if sendErr == nil {
		if _, err := s.store.MarkCompleted(ctx, rem.ID); err != nil {
			// Delivered but not flagged: the next sweep may send it again.
			logger.Log.Error().Err(err).Int64("reminder_id", rem.ID).Msg("Failed to mark reminder completed")
		}
		telemetry.ReminderSent(ctx)
		res.Sent++
		return
	}

	res.Failed++
	telemetry.ReminderFailed(ctx)

	attempts, err := s.store.RecordFailure(ctx, rem.ID)
	if err != nil {
		logger.Log.Error().Err(err).Int64("reminder_id", rem.ID).Msg("Failed to record reminder failure")
		return
	}

	log := logger.Log.Warn()
	if attempts >= s.maxAttempts {
		if _, err := s.store.MarkCompleted(ctx, rem.ID); err != nil {
			logger.Log.Error().Err(err).Int64("reminder_id", rem.ID).Msg("Failed to abandon reminder")
		}
		res.Abandoned++
		log = logger.Log.Error().Bool("abandoned", true)
	}
	log.Err(sendErr).
		Str("user_id", logger.HashUserID(rem.UserID)).
		Int64("reminder_id", rem.ID).
		Int("attempts", attempts).
		Msg("Failed to send reminder")
}
