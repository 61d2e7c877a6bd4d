package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

type countingLauncher struct {
	mu       sync.Mutex
	launches []model.Trigger
}

func (l *countingLauncher) Launch(ctx context.Context, taskName string, trigger model.Trigger) (*model.TaskExecution, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launches = append(l.launches, trigger)
	te := model.NewTaskExecution(taskName, trigger)
	te.MarkAsStarted()
	te.MarkAsCompleted(model.ExitStatusCompleted)
	return te, nil
}

func (l *countingLauncher) triggers() []model.Trigger {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Trigger, len(l.launches))
	copy(out, l.launches)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestScheduler_RunFirst(t *testing.T) {
	l := &countingLauncher{}
	s := NewIntervalScheduler(l, "vacation-update", time.Hour, true)

	s.Start(context.Background())
	defer s.Stop()

	waitFor(t, func() bool { return len(l.triggers()) >= 1 })
	assert.Equal(t, model.TriggerScheduled, l.triggers()[0])
}

func TestScheduler_IntervalLaunches(t *testing.T) {
	l := &countingLauncher{}
	s := NewIntervalScheduler(l, "vacation-update", 20*time.Millisecond, false)

	s.Start(context.Background())
	defer s.Stop()

	waitFor(t, func() bool { return len(l.triggers()) >= 2 })
	for _, trigger := range l.triggers() {
		assert.Equal(t, model.TriggerScheduled, trigger)
	}
}

func TestScheduler_TriggerNow(t *testing.T) {
	l := &countingLauncher{}
	s := NewIntervalScheduler(l, "vacation-update", time.Hour, false)

	s.Start(context.Background())
	defer s.Stop()

	s.TriggerNow()

	waitFor(t, func() bool { return len(l.triggers()) >= 1 })
	assert.Equal(t, model.TriggerManual, l.triggers()[0])
}

func TestScheduler_StopTerminatesLoop(t *testing.T) {
	l := &countingLauncher{}
	s := NewIntervalScheduler(l, "vacation-update", time.Hour, false)

	s.Start(context.Background())
	s.Stop()

	// TriggerNow after Stop must not launch anything.
	s.TriggerNow()
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, l.triggers())
}

func TestScheduler_ContextCancelTerminatesLoop(t *testing.T) {
	l := &countingLauncher{}
	s := NewIntervalScheduler(l, "vacation-update", 10*time.Millisecond, false)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	waitFor(t, func() bool { return len(l.triggers()) >= 1 })
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-s.doneCh:
			return true
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)
}
