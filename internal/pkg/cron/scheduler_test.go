package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := atomic.LoadInt32(&runs)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs))
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := NewScheduler()
	cancelled := make(chan struct{})
	s.AddJob("blocking", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	s.Start()
	s.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("job context was not cancelled")
	}
}

func TestScheduler_IgnoresInvalidAndLateJobs(t *testing.T) {
	s := NewScheduler()
	s.AddJob("no-interval", 0, func(ctx context.Context) error { return nil })
	s.Start()
	defer s.Stop()
	s.AddJob("late", time.Hour, func(ctx context.Context) error { return nil })

	assert.Empty(t, s.jobs)
}

func TestScheduler_RunOnceSurvivesPanicsAndErrors(t *testing.T) {
	s := NewScheduler()
	var ran int32
	s.AddJob("panics", time.Hour, func(ctx context.Context) error { panic("boom") })
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("nope") })
	s.AddJob("works", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

type stubShifts struct {
	closed  int
	err     error
	lastMax time.Duration
}

func (s *stubShifts) CloseStaleShifts(ctx context.Context, maxDuration time.Duration) (int, error) {
	s.lastMax = maxDuration
	return s.closed, s.err
}

type stubTokens struct{ calls int }

func (s *stubTokens) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	s.calls++
	return 4, nil
}

func TestShiftJobs(t *testing.T) {
	shifts := &stubShifts{closed: 2}
	tokens := &stubTokens{}
	jobs := NewShiftJobs(shifts, tokens, 16*time.Hour, 5*time.Minute)
	s := NewScheduler()
	jobs.RegisterJobs(s)

	s.RunOnce(context.Background())

	require.Len(t, s.jobs, 2)
	assert.Equal(t, 5*time.Minute, s.jobs[0].Interval)
	assert.Equal(t, 16*time.Hour, shifts.lastMax)
	assert.Equal(t, 1, tokens.calls)
}

func TestShiftJobs_WrapsError(t *testing.T) {
	boom := errors.New("db down")
	jobs := NewShiftJobs(&stubShifts{err: boom}, &stubTokens{}, time.Hour, time.Minute)

	err := jobs.AutoCloseStaleShifts(context.Background())

	assert.ErrorIs(t, err, boom)
}
