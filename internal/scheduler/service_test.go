package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/pkg/logger"
)

func newCountingTask(fired *atomic.Int32) *Task {
	return &Task{
		Name:     "tick",
		Interval: time.Minute,
		NextRun:  time.Now().Add(-time.Second),
		Run:      func() { fired.Add(1) },
	}
}

func waitForCount(t *testing.T, fired *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if fired.Load() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	require.Equal(t, want, fired.Load())
}

func TestDueTaskFiresOnce(t *testing.T) {
	s := NewScheduler(logger.NewNop())
	var fired atomic.Int32
	task := newCountingTask(&fired)
	s.Schedule(task)

	s.processTasks()
	waitForCount(t, &fired, 1)

	// NextRun advanced a full interval, so the next pass is a no-op.
	s.processTasks()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestPausedTaskDoesNotFire(t *testing.T) {
	s := NewScheduler(logger.NewNop())
	var fired atomic.Int32
	task := newCountingTask(&fired)
	s.Schedule(task)
	s.Pause(task.ID)

	s.processTasks()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestResumeReschedulesBeforeFiring(t *testing.T) {
	s := NewScheduler(logger.NewNop())
	var fired atomic.Int32
	task := newCountingTask(&fired)
	s.Schedule(task)
	s.Pause(task.ID)
	s.Resume(task.ID)

	// Resume pushes NextRun a full interval out, so nothing is due yet.
	s.processTasks()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	task.NextRun = time.Now().Add(-time.Second)
	s.processTasks()
	waitForCount(t, &fired, 1)
}
