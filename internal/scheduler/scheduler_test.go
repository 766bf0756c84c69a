package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobs(t *testing.T) {
	t.Parallel()
	s := New(time.UTC, time.Second)

	var runs atomic.Int32
	require.NoError(t, s.Add("tick", "@every 10ms", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	t.Parallel()
	s := New(time.UTC, time.Second)
	err := s.Add("broken", "every morning", func(context.Context) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken")
}

func TestScheduler_RunAppliesTimeout(t *testing.T) {
	t.Parallel()
	s := New(time.UTC, 20*time.Millisecond)

	var got error
	s.run("slow", func(ctx context.Context) error {
		<-ctx.Done()
		got = ctx.Err()
		return got
	})
	require.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestScheduler_RecoversPanics(t *testing.T) {
	t.Parallel()
	s := New(time.UTC, time.Second)

	var runs atomic.Int32
	require.NoError(t, s.Add("boom", "@every 10ms", func(context.Context) error {
		runs.Add(1)
		panic("job exploded")
	}))
	s.Start(context.Background())
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestScheduler_FailingJobKeepsSchedule(t *testing.T) {
	t.Parallel()
	s := New(time.UTC, time.Second)

	var runs atomic.Int32
	require.NoError(t, s.Add("fails", "@every 10ms", func(context.Context) error {
		runs.Add(1)
		return errors.New("db unavailable")
	}))
	s.Start(context.Background())
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestCronLogger(t *testing.T) {
	t.Parallel()
	l := cronLogger{}
	require.NotPanics(t, func() {
		l.Info("schedule", "now", time.Now(), "entry", 1)
		l.Error(errors.New("x"), "panic", "stack", "...")
	})
}
