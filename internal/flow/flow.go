// Package flow drives the multi-step data entry conversations: adding an
// operation, setting a reminder, and creating or updating savings goals.
package flow

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/state"
)

// Scratch data keys.
const (
	keyKind     = "kind"
	keyCategory = "category"
	keyCurrency = "currency"
	keyAmount   = "amount"
	keyTask     = "task"
	keyPeriod   = "period"
	keyName     = "name"
	keyTarget   = "target"
	keyGoalIDs  = "goal_ids"
	keyGoalID   = "goal_id"
)

// OperationStore persists operations.
type OperationStore interface {
	Create(ctx context.Context, op *models.Operation) error
}

// CurrencySettings resolves a user's display currency.
type CurrencySettings interface {
	GetCurrencySettings(ctx context.Context, userID int64) (*models.UserSettings, error)
}

// ReminderService creates reminders.
type ReminderService interface {
	Create(ctx context.Context, userID, chatID int64, task string, due time.Time) (*models.Reminder, error)
}

// GoalService manages savings goals.
type GoalService interface {
	Add(ctx context.Context, userID int64, name string, target decimal.Decimal, deadline *time.Time) (*models.Goal, error)
	List(ctx context.Context, userID int64) ([]models.Goal, error)
	UpdateProgress(ctx context.Context, userID, goalID int64, delta decimal.Decimal) (*models.Goal, error)
	Complete(ctx context.Context, userID, goalID int64) (*models.Goal, error)
}

// Input is one user message.
type Input struct {
	UserID int64
	ChatID int64
	Lang   string
	Text   string
}

// Reply is the response to render. A nil Keyboard leaves the current one in place.
type Reply struct {
	Text     string
	Keyboard [][]string
}

func reply(lang, key string, menu i18n.Menu, args ...any) Reply {
	text := i18n.T(lang, key)
	if len(args) > 0 {
		text = i18n.Tf(lang, key, args...)
	}
	return Reply{Text: text, Keyboard: i18n.Keyboard(lang, menu)}
}

// Engine advances conversations one message at a time.
type Engine struct {
	states    state.Store
	ops       OperationStore
	settings  CurrencySettings
	reminders ReminderService
	goals     GoalService
	loc       *time.Location
	now       func() time.Time
}

// NewEngine creates an Engine. Dates are interpreted in loc.
func NewEngine(
	states state.Store,
	ops OperationStore,
	settings CurrencySettings,
	reminders ReminderService,
	goals GoalService,
	loc *time.Location,
) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		states:    states,
		ops:       ops,
		settings:  settings,
		reminders: reminders,
		goals:     goals,
		loc:       loc,
		now:       time.Now,
	}
}

// Cancel drops any in-progress conversation.
func (e *Engine) Cancel(ctx context.Context, userID int64) error {
	return e.states.Clear(ctx, userID)
}

// Handle feeds in to the user's active conversation. It reports false when
// the user has no conversation owned by this package.
func (e *Engine) Handle(ctx context.Context, in Input) (Reply, bool) {
	conv, err := e.states.Get(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to load conversation state")
		return reply(in.Lang, "error_generic", i18n.MenuMain), true
	}

	switch conv.State {
	case state.AwaitingCategory:
		return e.onCategory(ctx, in, conv), true
	case state.AwaitingAmount:
		return e.onAmount(ctx, in, conv), true
	case state.AwaitingComment:
		return e.onComment(ctx, in, conv), true
	case state.AwaitingReminderTask:
		return e.onReminderTask(ctx, in, conv), true
	case state.AwaitingReminderPeriod:
		return e.onReminderPeriod(ctx, in, conv), true
	case state.AwaitingTime:
		return e.onReminderTime(ctx, in, conv), true
	case state.AwaitingGoalName:
		return e.onGoalName(ctx, in, conv), true
	case state.AwaitingGoalTarget:
		return e.onGoalTarget(ctx, in, conv), true
	case state.AwaitingGoalDeadline:
		return e.onGoalDeadline(ctx, in, conv), true
	case state.AwaitingGoalSelection:
		return e.onGoalSelection(ctx, in, conv), true
	case state.AwaitingGoalContribution:
		return e.onGoalContribution(ctx, in, conv), true
	case state.AwaitingGoalCompletion:
		return e.onGoalCompletion(ctx, in, conv), true
	default:
		return Reply{}, false
	}
}

// advance stores conv and returns ok, or the generic failure reply.
func (e *Engine) advance(ctx context.Context, in Input, conv state.Conversation, ok Reply) Reply {
	if err := e.states.Set(ctx, in.UserID, conv); err != nil {
		logger.Log.Error().Err(err).
			Str("user_id", logger.HashUserID(in.UserID)).
			Str("state", string(conv.State)).
			Msg("Failed to save conversation state")
		return reply(in.Lang, "error_generic", i18n.MenuMain)
	}
	return ok
}

// finish clears the conversation. Failures are logged only; the next flow
// start overwrites the row anyway.
func (e *Engine) finish(ctx context.Context, userID int64) {
	if err := e.states.Clear(ctx, userID); err != nil {
		logger.Log.Warn().Err(err).Str("user_id", logger.HashUserID(userID)).Msg("Failed to clear conversation state")
	}
}

func (e *Engine) currency(ctx context.Context, userID int64) string {
	settings, err := e.settings.GetCurrencySettings(ctx, userID)
	if err != nil || settings.Currency == "" {
		if err != nil {
			logger.Log.Warn().Err(err).Str("user_id", logger.HashUserID(userID)).Msg("Falling back to default currency")
		}
		return models.DefaultCurrency
	}
	return settings.Currency
}
