package flow

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/goals"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/state"
)

const deadlineLayout = "02.01.2006"

// StartGoal begins the name, target, deadline sequence.
func (e *Engine) StartGoal(ctx context.Context, in Input) Reply {
	return e.advance(ctx, in, state.New(state.AwaitingGoalName),
		reply(in.Lang, "enter_goal_name", i18n.MenuBack))
}

func (e *Engine) onGoalName(ctx context.Context, in Input, conv state.Conversation) Reply {
	name := strings.TrimSpace(in.Text)
	if name == "" {
		return reply(in.Lang, "enter_goal_name", i18n.MenuBack)
	}
	if utf8.RuneCountInString(name) > models.MaxGoalNameLength {
		return reply(in.Lang, "goal_name_too_long", i18n.MenuBack, models.MaxGoalNameLength)
	}
	next := conv.With(state.AwaitingGoalTarget, keyName, name)
	return e.advance(ctx, in, next, reply(in.Lang, "enter_goal_target", i18n.MenuBack, e.currency(ctx, in.UserID)))
}

func (e *Engine) onGoalTarget(ctx context.Context, in Input, conv state.Conversation) Reply {
	target, err := ParseAmount(in.Text)
	if err != nil {
		return reply(in.Lang, "invalid_amount", i18n.MenuBack)
	}
	next := conv.With(state.AwaitingGoalDeadline, keyTarget, target.String())
	return e.advance(ctx, in, next, reply(in.Lang, "enter_goal_deadline", i18n.MenuGoalDeadline))
}

func (e *Engine) onGoalDeadline(ctx context.Context, in Input, conv state.Conversation) Reply {
	var deadline *time.Time
	if !i18n.IsLabel(in.Text, "skip") {
		d, err := e.parseDeadline(in.Text)
		if err != nil {
			return reply(in.Lang, "invalid_deadline", i18n.MenuGoalDeadline)
		}
		deadline = &d
	}

	defer e.finish(ctx, in.UserID)
	target, err := decimal.NewFromString(conv.Data[keyTarget])
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Corrupt goal conversation")
		return reply(in.Lang, "error_generic", i18n.MenuGoals)
	}

	goal, err := e.goals.Add(ctx, in.UserID, conv.Data[keyName], target, deadline)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to add goal")
		return reply(in.Lang, "error_generic", i18n.MenuGoals)
	}
	logger.Log.Info().
		Str("user_id", logger.HashUserID(in.UserID)).
		Int64("goal_id", goal.ID).
		Str("name", logger.SanitizeComment(goal.Name)).
		Msg("Goal added")
	return reply(in.Lang, "goal_added", i18n.MenuGoals, goal.Name)
}

// parseDeadline accepts DD.MM.YYYY dates from today onwards.
func (e *Engine) parseDeadline(text string) (time.Time, error) {
	d, err := time.ParseInLocation(deadlineLayout, strings.TrimSpace(text), e.loc)
	if err != nil {
		return time.Time{}, err
	}
	y, m, day := e.now().In(e.loc).Date()
	if d.Before(time.Date(y, m, day, 0, 0, 0, 0, e.loc)) {
		return time.Time{}, errors.New("deadline is in the past")
	}
	return d, nil
}

// StartContribution lists active goals and asks which one to fund.
func (e *Engine) StartContribution(ctx context.Context, in Input) Reply {
	return e.startSelection(ctx, in, state.AwaitingGoalSelection)
}

// StartCompletion lists active goals and asks which one to close.
func (e *Engine) StartCompletion(ctx context.Context, in Input) Reply {
	return e.startSelection(ctx, in, state.AwaitingGoalCompletion)
}

// ListGoals renders the user's active goals.
func (e *Engine) ListGoals(ctx context.Context, in Input) Reply {
	list, err := e.goals.List(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to list goals")
		return reply(in.Lang, "error_generic", i18n.MenuGoals)
	}
	if len(list) == 0 {
		return reply(in.Lang, "goals_empty", i18n.MenuGoals)
	}
	return Reply{Text: renderGoals(in.Lang, list), Keyboard: i18n.Keyboard(in.Lang, i18n.MenuGoals)}
}

func renderGoals(lang string, list []models.Goal) string {
	var sb strings.Builder
	sb.WriteString(i18n.T(lang, "goals_list_header"))
	for i, g := range list {
		sb.WriteString("\n")
		sb.WriteString(goals.Line(lang, i+1, g))
	}
	return sb.String()
}

// startSelection shows the numbered list and remembers the ids in display
// order, so the number the user sends refers to what they saw.
func (e *Engine) startSelection(ctx context.Context, in Input, next state.State) Reply {
	list, err := e.goals.List(ctx, in.UserID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Msg("Failed to list goals")
		return reply(in.Lang, "error_generic", i18n.MenuGoals)
	}
	if len(list) == 0 {
		e.finish(ctx, in.UserID)
		return reply(in.Lang, "goals_empty", i18n.MenuGoals)
	}

	ids := make([]string, len(list))
	for i, g := range list {
		ids[i] = strconv.FormatInt(g.ID, 10)
	}
	conv := state.New(next).With(next, keyGoalIDs, strings.Join(ids, ","))
	text := renderGoals(in.Lang, list) + "\n\n" + i18n.T(in.Lang, "select_goal")
	return e.advance(ctx, in, conv, Reply{Text: text, Keyboard: i18n.Keyboard(in.Lang, i18n.MenuBack)})
}

// selectedGoal maps the list number in text to a goal id.
func selectedGoal(conv state.Conversation, text string) (int64, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	ids := strings.Split(conv.Data[keyGoalIDs], ",")
	if n < 1 || n > len(ids) {
		return 0, false
	}
	id, err := strconv.ParseInt(ids[n-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (e *Engine) onGoalSelection(ctx context.Context, in Input, conv state.Conversation) Reply {
	id, ok := selectedGoal(conv, in.Text)
	if !ok {
		return reply(in.Lang, "invalid_goal_selection", i18n.MenuBack)
	}
	next := conv.With(state.AwaitingGoalContribution, keyGoalID, strconv.FormatInt(id, 10))
	return e.advance(ctx, in, next, reply(in.Lang, "enter_contribution", i18n.MenuBack, e.currency(ctx, in.UserID)))
}

func (e *Engine) onGoalContribution(ctx context.Context, in Input, conv state.Conversation) Reply {
	amount, err := ParseAmount(in.Text)
	if err != nil {
		return reply(in.Lang, "invalid_amount", i18n.MenuBack)
	}

	defer e.finish(ctx, in.UserID)
	id, _ := strconv.ParseInt(conv.Data[keyGoalID], 10, 64)
	goal, err := e.goals.UpdateProgress(ctx, in.UserID, id, amount)
	switch {
	case errors.Is(err, goals.ErrGoalNotFound):
		return reply(in.Lang, "goal_not_found", i18n.MenuGoals)
	case errors.Is(err, goals.ErrGoalCompleted) && goal != nil:
		return reply(in.Lang, "goal_closed", i18n.MenuGoals, goal.Name)
	case err != nil:
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Int64("goal_id", id).Msg("Failed to update goal")
		return reply(in.Lang, "error_generic", i18n.MenuGoals)
	}

	return reply(in.Lang, "goal_progress", i18n.MenuGoals, goal.Name,
		goal.CurrentAmount.StringFixed(2), goal.TargetAmount.StringFixed(2), goal.Percent().StringFixed(1))
}

func (e *Engine) onGoalCompletion(ctx context.Context, in Input, conv state.Conversation) Reply {
	id, ok := selectedGoal(conv, in.Text)
	if !ok {
		return reply(in.Lang, "invalid_goal_selection", i18n.MenuBack)
	}

	defer e.finish(ctx, in.UserID)
	goal, err := e.goals.Complete(ctx, in.UserID, id)
	switch {
	case errors.Is(err, goals.ErrGoalNotFound):
		return reply(in.Lang, "goal_not_found", i18n.MenuGoals)
	case err != nil:
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(in.UserID)).Int64("goal_id", id).Msg("Failed to complete goal")
		return reply(in.Lang, "error_generic", i18n.MenuGoals)
	}
	return reply(in.Lang, "goal_closed", i18n.MenuGoals, goal.Name)
}
