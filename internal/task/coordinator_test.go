package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/listener"
)

type launchedTask struct {
	name    string
	trigger model.Trigger
}

type recordingLauncher struct {
	mu       sync.Mutex
	launched []launchedTask
}

func (l *recordingLauncher) Launch(_ context.Context, taskName string, trigger model.Trigger) (*model.TaskExecution, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launched = append(l.launched, launchedTask{name: taskName, trigger: trigger})
	return model.NewTaskExecution(taskName, trigger), nil
}

func (l *recordingLauncher) snapshot() []launchedTask {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]launchedTask(nil), l.launched...)
}

func finishedExecution(taskName string) *model.TaskExecution {
	execution := model.NewTaskExecution(taskName, model.TriggerScheduled)
	execution.MarkAsStarted()
	execution.MarkAsCompleted(model.ExitStatusCompleted)
	return execution
}

func TestCoordinator_TriggersNotificationAfterUpdate(t *testing.T) {
	launcher := &recordingLauncher{}
	signaler := listener.NewCompletionSignaler()
	c := NewCoordinator(launcher, signaler)
	c.Start(context.Background())
	defer c.Stop()

	signaler.AfterTask(context.Background(), finishedExecution(UpdateTaskName))

	require.Eventually(t, func() bool {
		return len(launcher.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	got := launcher.snapshot()[0]
	assert.Equal(t, NotificationTaskName, got.name)
	assert.Equal(t, model.TriggerUpstream, got.trigger)
}

func TestCoordinator_TriggersOnFailedUpdate(t *testing.T) {
	launcher := &recordingLauncher{}
	signaler := listener.NewCompletionSignaler()
	c := NewCoordinator(launcher, signaler)
	c.Start(context.Background())
	defer c.Stop()

	execution := model.NewTaskExecution(UpdateTaskName, model.TriggerScheduled)
	execution.MarkAsStarted()
	execution.MarkAsFailed(nil)
	signaler.AfterTask(context.Background(), execution)

	// A failed update still triggers notification against the last
	// consistent target store state.
	require.Eventually(t, func() bool {
		return len(launcher.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCoordinator_IgnoresOtherTasks(t *testing.T) {
	launcher := &recordingLauncher{}
	signaler := listener.NewCompletionSignaler()
	c := NewCoordinator(launcher, signaler)
	c.Start(context.Background())

	signaler.AfterTask(context.Background(), finishedExecution(NotificationTaskName))

	time.Sleep(50 * time.Millisecond)
	c.Stop()
	assert.Empty(t, launcher.snapshot())
}
