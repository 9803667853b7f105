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

type countingTask struct {
	name     string
	interval time.Duration
	runs     atomic.Int32
	err      error
}

func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	return t.err
}

func (t *countingTask) Interval() time.Duration { return t.interval }
func (t *countingTask) Name() string            { return t.name }

func TestScheduler_RunsOnStartAndInterval(t *testing.T) {
	task := &countingTask{name: "tick", interval: 10 * time.Millisecond}
	s := New(context.Background())
	s.AddTask(task)
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return task.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_Trigger(t *testing.T) {
	task := &countingTask{name: "refresh", interval: time.Hour}
	s := New(context.Background())
	s.AddTask(task)
	assert.False(t, s.Trigger("missing"))

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return task.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, s.Trigger("refresh"))
	require.Eventually(t, func() bool { return task.runs.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_ErrorsDoNotStopTask(t *testing.T) {
	task := &countingTask{name: "failing", interval: 10 * time.Millisecond, err: errors.New("boom")}
	s := New(context.Background())
	s.AddTask(task)
	s.Start()

	require.Eventually(t, func() bool { return task.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := task.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, task.runs.Load())
}
