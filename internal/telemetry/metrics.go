package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "gitlab.com/yelinaung/finance-bot"

type instruments struct {
	operations       metric.Int64Counter
	remindersSent    metric.Int64Counter
	reminderFailures metric.Int64Counter
	goalNotices      metric.Int64Counter
	jobRuns          metric.Int64Counter
}

var current atomic.Pointer[instruments]

func init() {
	// The global provider delegates once Setup installs a real one.
	if err := UseMeterProvider(otel.GetMeterProvider()); err != nil {
		panic(err)
	}
}

// UseMeterProvider rebinds the application counters to mp.
func UseMeterProvider(mp metric.MeterProvider) error {
	m := mp.Meter(instrumentationName)
	var (
		in  instruments
		err error
	)
	if in.operations, err = m.Int64Counter("finance.operations.created",
		metric.WithDescription("Operations persisted by the entry pipeline")); err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}
	if in.remindersSent, err = m.Int64Counter("finance.reminders.sent",
		metric.WithDescription("Reminders delivered")); err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}
	if in.reminderFailures, err = m.Int64Counter("finance.reminders.failed",
		metric.WithDescription("Reminder delivery failures")); err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}
	if in.goalNotices, err = m.Int64Counter("finance.goals.notifications",
		metric.WithDescription("Goal notifications sent")); err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}
	if in.jobRuns, err = m.Int64Counter("finance.jobs.runs",
		metric.WithDescription("Scheduled job runs")); err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}
	current.Store(&in)
	return nil
}

// OperationCreated counts a persisted operation.
func OperationCreated(ctx context.Context, kind string) {
	current.Load().operations.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// ReminderSent counts a delivered reminder.
func ReminderSent(ctx context.Context) {
	current.Load().remindersSent.Add(ctx, 1)
}

// ReminderFailed counts a failed reminder delivery.
func ReminderFailed(ctx context.Context) {
	current.Load().reminderFailures.Add(ctx, 1)
}

// GoalNotification counts a goal message of the given type ("completed" or "digest").
func GoalNotification(ctx context.Context, typ string) {
	current.Load().goalNotices.Add(ctx, 1, metric.WithAttributes(attribute.String("type", typ)))
}

// JobRun counts a scheduled job run and its outcome.
func JobRun(ctx context.Context, job string, err error) {
	current.Load().jobRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("job", job),
		attribute.Bool("error", err != nil),
	))
}

// Tracer returns the application tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
