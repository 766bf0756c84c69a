// Package scheduler runs the periodic background jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/telemetry"
	"go.opentelemetry.io/otel/codes"
)

// DefaultJobTimeout bounds a single job run.
const DefaultJobTimeout = 2 * time.Minute

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner. Overlapping runs of the same job are
// skipped and panics are recovered.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	base    context.Context
}

// New creates a Scheduler evaluating specs in loc.
func New(loc *time.Location, timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	l := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		timeout: timeout,
		base:    context.Background(),
	}
}

// Add registers job under name. spec is a standard five-field cron
// expression or a descriptor such as "@every 1m".
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	logger.Log.Info().Str("job", name).Str("spec", spec).Msg("Job scheduled")
	return nil
}

// Start runs the scheduler in the background. Job contexts derive from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.base = ctx
	s.cron.Start()
	logger.Log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop halts scheduling and waits for running jobs, up to ctx's deadline.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		logger.Log.Info().Msg("Scheduler stopped")
	case <-ctx.Done():
		logger.Log.Warn().Msg("Scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(s.base, s.timeout)
	defer cancel()

	ctx, span := telemetry.Tracer().Start(ctx, "job."+name)
	defer span.End()

	start := time.Now()
	err := job(ctx)
	telemetry.JobRun(ctx, name, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.Error().Err(err).Str("job", name).Dur("took", time.Since(start)).Msg("Job failed")
		return
	}
	logger.Log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("Job finished")
}

// cronLogger routes cron's own logging to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
