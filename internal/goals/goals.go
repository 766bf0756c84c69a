// Package goals tracks savings goals and notifies users when they are reached.
package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/repository"
	"gitlab.com/yelinaung/finance-bot/internal/telemetry"
)

// Errors returned by Service.
var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrGoalCompleted = errors.New("goal already completed")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidName   = errors.New("invalid goal name")
)

// Store persists goals.
type Store interface {
	Create(ctx context.Context, goal *models.Goal) error
	Get(ctx context.Context, userID, goalID int64) (*models.Goal, error)
	ListActive(ctx context.Context, userID int64) ([]models.Goal, error)
	ListIncomplete(ctx context.Context) ([]models.Goal, error)
	SaveProgress(ctx context.Context, goalID int64, current decimal.Decimal, completed bool) error
	ForceComplete(ctx context.Context, userID, goalID int64) (*models.Goal, error)
	ClaimCompletionNotice(ctx context.Context, goalID int64) (bool, error)
	ReleaseCompletionNotice(ctx context.Context, goalID int64) error
}

// Preferences exposes per-user language and notification settings.
type Preferences interface {
	GetLanguage(ctx context.Context, userID int64) (string, error)
	GetNotifications(ctx context.Context, userID int64) (bool, error)
}

// Notifier delivers a text message to a user's private chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// Service implements goal tracking.
type Service struct {
	store    Store
	prefs    Preferences
	notifier Notifier
	now      func() time.Time
}

// NewService creates a goal Service.
func NewService(store Store, prefs Preferences, notifier Notifier) *Service {
	return &Service{store: store, prefs: prefs, notifier: notifier, now: time.Now}
}

// Add creates a goal with zero progress.
func (s *Service) Add(ctx context.Context, userID int64, name string, target decimal.Decimal, deadline *time.Time) (*models.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > models.MaxGoalNameLength {
		return nil, ErrInvalidName
	}
	if !target.IsPositive() {
		return nil, ErrInvalidAmount
	}

	goal := &models.Goal{UserID: userID, Name: name, TargetAmount: target, Deadline: deadline}
	if err := s.store.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to add goal: %w", err)
	}
	return goal, nil
}

// List returns the user's active goals.
func (s *Service) List(ctx context.Context, userID int64) ([]models.Goal, error) {
	goals, err := s.store.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// UpdateProgress adds delta to the goal. Progress is clamped to the target and
// reaching it completes the goal and sends a one-time completion notice.
func (s *Service) UpdateProgress(ctx context.Context, userID, goalID int64, delta decimal.Decimal) (*models.Goal, error) {
	if !delta.IsPositive() {
		return nil, ErrInvalidAmount
	}

	goal, err := s.get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.IsCompleted {
		return goal, ErrGoalCompleted
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(delta)
	if goal.Reached() {
		goal.CurrentAmount = goal.TargetAmount
		goal.IsCompleted = true
	}

	if err := s.store.SaveProgress(ctx, goal.ID, goal.CurrentAmount, goal.IsCompleted); err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	if goal.IsCompleted {
		s.notifyCompletion(ctx, goal)
	}
	return goal, nil
}

// Complete forces the goal to its target and marks it completed. The
// completion notice is claimed so the sweep does not announce it again.
func (s *Service) Complete(ctx context.Context, userID, goalID int64) (*models.Goal, error) {
	goal, err := s.store.ForceComplete(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to complete goal: %w", err)
	}
	if _, err := s.store.ClaimCompletionNotice(ctx, goal.ID); err != nil {
		logger.Log.Warn().Err(err).Int64("goal_id", goal.ID).Msg("Failed to mark completion notice")
	}
	return goal, nil
}

func (s *Service) get(ctx context.Context, userID, goalID int64) (*models.Goal, error) {
	goal, err := s.store.Get(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// notifyCompletion sends the completion notice at most once across the inline
// path and the sweep. A failed send releases the claim for the next sweep.
func (s *Service) notifyCompletion(ctx context.Context, goal *models.Goal) bool {
	claimed, err := s.store.ClaimCompletionNotice(ctx, goal.ID)
	if err != nil {
		logger.Log.Error().Err(err).Int64("goal_id", goal.ID).Msg("Failed to claim completion notice")
		return false
	}
	if !claimed {
		return false
	}

	lang := s.language(ctx, goal.UserID)
	if err := s.notifier.Notify(ctx, goal.UserID, i18n.Tf(lang, "goal_completed", goal.Name)); err != nil {
		logger.Log.Error().Err(err).
			Str("user_id", logger.HashUserID(goal.UserID)).
			Int64("goal_id", goal.ID).
			Msg("Failed to send goal completion notice")
		if err := s.store.ReleaseCompletionNotice(ctx, goal.ID); err != nil {
			logger.Log.Error().Err(err).Int64("goal_id", goal.ID).Msg("Failed to release completion notice")
		}
		return false
	}

	telemetry.GoalNotification(ctx, "completed")
	return true
}

func (s *Service) language(ctx context.Context, userID int64) string {
	lang, err := s.prefs.GetLanguage(ctx, userID)
	if err != nil || !i18n.Supported(lang) {
		return i18n.DefaultLanguage
	}
	return lang
}
