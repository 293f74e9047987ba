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

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	var runs atomic.Int32

	s := NewScheduler()
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Start(context.Background())

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		order = append(order, "ok")
		return nil
	})
	s.AddJob("fails", time.Hour, func(ctx context.Context) error {
		order = append(order, "fails")
		return errors.New("boom")
	})
	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		order = append(order, "panics")
		panic("bad")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fails: boom")
	assert.Contains(t, err.Error(), "panic in job panics")
	assert.Equal(t, []string{"ok", "fails", "panics"}, order)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}

type fakePruner struct{ calls int }

func (f *fakePruner) PruneRevoked(time.Time) int {
	f.calls++
	return 2
}

type fakeDeleter struct {
	before time.Time
	err    error
}

func (f *fakeDeleter) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return 1, f.err
}

func TestAuthJobs(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	pruner := &fakePruner{}
	deleter := &fakeDeleter{}

	jobs := NewAuthJobs(pruner, deleter)
	jobs.now = func() time.Time { return now }

	s := NewScheduler()
	jobs.RegisterJobs(s, time.Hour)
	require.NoError(t, s.RunOnce(context.Background()))

	assert.Equal(t, 1, pruner.calls)
	assert.Equal(t, now, deleter.before)

	deleter.err = errors.New("db down")
	assert.ErrorContains(t, jobs.DeleteExpiredRefreshTokens(context.Background()), "db down")
}
