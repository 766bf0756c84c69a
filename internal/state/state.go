// Package state stores per-user conversation progress between chat turns.
package state

import (
	"context"
	"maps"
)

// State tags the step a user's conversation is waiting on.
type State string

// Conversation states.
const (
	None                       State = ""
	AwaitingCategory           State = "awaiting_category"
	AwaitingAmount             State = "awaiting_amount"
	AwaitingComment            State = "awaiting_comment"
	AwaitingReportPeriod       State = "awaiting_report_period"
	AwaitingCurrency           State = "awaiting_currency"
	AwaitingLanguage           State = "awaiting_language"
	AwaitingNotificationChoice State = "awaiting_notification_choice"
	AwaitingReminderTask       State = "awaiting_reminder_task"
	AwaitingReminderPeriod     State = "awaiting_reminder_period"
	AwaitingTime               State = "awaiting_time"
	AwaitingGoalName           State = "awaiting_goal_name"
	AwaitingGoalTarget         State = "awaiting_goal_target"
	AwaitingGoalDeadline       State = "awaiting_goal_deadline"
	AwaitingGoalSelection      State = "awaiting_goal_selection"
	AwaitingGoalContribution   State = "awaiting_goal_contribution"
	AwaitingGoalCompletion     State = "awaiting_goal_completion"
)

// Conversation is a state tag plus the fields collected so far.
type Conversation struct {
	State State
	Data  map[string]string
}

// New returns a conversation in state s with empty scratch data.
func New(s State) Conversation {
	return Conversation{State: s, Data: map[string]string{}}
}

// Active reports whether the conversation is waiting on input.
func (c Conversation) Active() bool {
	return c.State != None
}

// With returns a copy of c moved to state s with key set to value.
func (c Conversation) With(s State, key, value string) Conversation {
	data := make(map[string]string, len(c.Data)+1)
	maps.Copy(data, c.Data)
	if key != "" {
		data[key] = value
	}
	return Conversation{State: s, Data: data}
}

// Store persists one conversation per user. Set overwrites any previous
// conversation; Get returns a None conversation for unknown users.
type Store interface {
	Get(ctx context.Context, userID int64) (Conversation, error)
	Set(ctx context.Context, userID int64, conv Conversation) error
	Clear(ctx context.Context, userID int64) error
}
