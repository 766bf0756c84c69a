package flow

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/state"
	"gitlab.com/yelinaung/finance-bot/internal/telemetry"
)

var categoryKinds = map[string]models.OperationKind{
	"add_income":  models.KindIncome,
	"add_expense": models.KindExpense,
}

// StartEntry begins the category, amount, comment sequence.
func (e *Engine) StartEntry(ctx context.Context, in Input) Reply {
	return e.advance(ctx, in, state.New(state.AwaitingCategory),
		reply(in.Lang, "select_category", i18n.MenuCategory))
}

func (e *Engine) onCategory(ctx context.Context, in Input, conv state.Conversation) Reply {
	key := i18n.LabelKey(in.Text, "add_income", "add_expense")
	if key == "" {
		return reply(in.Lang, "please_select", i18n.MenuCategory)
	}

	currency := e.currency(ctx, in.UserID)
	next := conv.With(state.AwaitingAmount, keyKind, string(categoryKinds[key])).
		With(state.AwaitingAmount, keyCategory, in.Text).
		With(state.AwaitingAmount, keyCurrency, currency)
	return e.advance(ctx, in, next, reply(in.Lang, "enter_amount", i18n.MenuBack, currency))
}

func (e *Engine) onAmount(ctx context.Context, in Input, conv state.Conversation) Reply {
	amount, err := ParseAmount(in.Text)
	if err != nil {
		return reply(in.Lang, "invalid_amount", i18n.MenuBack)
	}
	next := conv.With(state.AwaitingComment, keyAmount, amount.String())
	return e.advance(ctx, in, next, reply(in.Lang, "enter_comment", i18n.MenuBack))
}

func (e *Engine) onComment(ctx context.Context, in Input, conv state.Conversation) Reply {
	defer e.finish(ctx, in.UserID)

	amount, err := decimal.NewFromString(conv.Data[keyAmount])
	kind := models.OperationKind(conv.Data[keyKind])
	if err != nil || !kind.Valid() {
		logger.Log.Error().Err(err).
			Str("user_id", logger.HashUserID(in.UserID)).
			Str("kind", string(kind)).
			Msg("Corrupt entry conversation")
		return reply(in.Lang, "operation_failed", i18n.MenuMain)
	}

	op := &models.Operation{
		UserID:    in.UserID,
		Kind:      kind,
		Amount:    amount,
		Currency:  conv.Data[keyCurrency],
		Category:  conv.Data[keyCategory],
		Comment:   in.Text,
		CreatedAt: e.now(),
	}
	if op.Currency == "" {
		op.Currency = e.currency(ctx, in.UserID)
	}

	if err := e.ops.Create(ctx, op); err != nil {
		logger.Log.Error().Err(err).
			Str("user_id", logger.HashUserID(in.UserID)).
			Msg("Failed to save operation")
		return reply(in.Lang, "operation_failed", i18n.MenuMain)
	}

	telemetry.OperationCreated(ctx, string(op.Kind))
	logger.Log.Info().
		Str("user_id", logger.HashUserID(in.UserID)).
		Int64("operation_id", op.ID).
		Str("kind", string(op.Kind)).
		Str("comment", logger.SanitizeComment(op.Comment)).
		Msg("Operation added")
	return reply(in.Lang, "operation_added", i18n.MenuMain)
}
