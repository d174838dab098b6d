package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type everySchedule time.Duration

func (e everySchedule) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

type countingTask struct {
	runs     atomic.Int32
	startup  bool
	schedule cron.Schedule
	fail     bool
	panics   bool
}

func (t *countingTask) Name() string { return "counting" }
func (t *countingTask) Schedule() cron.Schedule { return t.schedule }
func (t *countingTask) IsStartupRun() bool { return t.startup }
func (t *countingTask) Run(context.Context) error {
	t.runs.Add(1)
	if t.panics {
		panic("boom")
	}
	if t.fail {
		return errors.New("failed")
	}
	return nil
}

func TestSchedulerRunsUntilClosed(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{startup: true, schedule: everySchedule(10 * time.Millisecond), fail: true}
	s.AddTask(task)
	s.Start()

	require.Eventually(t, func() bool { return task.runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
	n := task.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, task.runs.Load())
}

func TestSchedulerRecoversPanics(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{schedule: everySchedule(5 * time.Millisecond), panics: true}
	s.AddTask(task)
	s.Start()

	require.Eventually(t, func() bool { return task.runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestStartupOnlyTask(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{startup: true}
	s.AddTask(task)
	s.Start()

	require.NoError(t, sc.WaitClosed())
	assert.EqualValues(t, 1, task.runs.Load())
}

func TestParseSchedule(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)

	s, err := ParseSchedule("0 3 * * *")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 3, 0, 0, 0, time.Local), s.Next(from))

	s, err = ParseSchedule("@every 1h")
	require.NoError(t, err)
	assert.Equal(t, from.Add(time.Hour), s.Next(from))

	_, err = ParseSchedule("not a cron")
	assert.Error(t, err)
}
