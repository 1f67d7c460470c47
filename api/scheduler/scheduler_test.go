package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StartRegistersJobs(t *testing.T) {
	var runs int32
	s := NewScheduler(
		Job{Name: "dashboard", Spec: "@every 5m", Run: func(ctx context.Context) error { return nil }},
		Job{Name: "indexes", Spec: "@daily", RunOnStart: true, Run: func(ctx context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		}},
	)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.Entries(), 2)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, 10*time.Millisecond)
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(Job{Name: "broken", Spec: "every now and then", Run: func(ctx context.Context) error { return nil }})
	assert.Error(t, s.Start())
}

func TestScheduler_RunContainsFailures(t *testing.T) {
	s := NewScheduler()
	s.Timeout = 50 * time.Millisecond

	var deadline bool
	assert.NotPanics(t, func() {
		s.run(Job{Name: "fails", Run: func(ctx context.Context) error {
			_, deadline = ctx.Deadline()
			return errors.New("mocked-error")
		}})
		s.run(Job{Name: "panics", Run: func(ctx context.Context) error { panic("boom") }})
	})
	assert.True(t, deadline)
}
