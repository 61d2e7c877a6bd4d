package launcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
	"github.com/tripwind/tripwind/pkg/pipeline/infrastructure/repository/inmemory"
)

type fakeTasklet struct {
	name string
	exit model.ExitStatus
	err  error
	ran  int
}

func (t *fakeTasklet) Name() string { return t.name }

func (t *fakeTasklet) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	t.ran++
	return t.exit, t.err
}

type recordingListener struct {
	before []string
	after  []model.TaskStatus
}

func (l *recordingListener) BeforeTask(ctx context.Context, execution *model.TaskExecution) {
	l.before = append(l.before, execution.TaskName)
}

func (l *recordingListener) AfterTask(ctx context.Context, execution *model.TaskExecution) {
	l.after = append(l.after, execution.Status)
}

func newLauncher(tasklets []ports.Tasklet, listeners []ports.TaskExecutionListener) (*SimpleTaskLauncher, *inmemory.InMemoryTaskExecutionRepository) {
	repo := inmemory.NewInMemoryTaskExecutionRepository()
	l := NewSimpleTaskLauncher(LauncherParams{
		Repo:      repo,
		Tasklets:  tasklets,
		Listeners: listeners,
	})
	return l, repo
}

func TestLaunch_Success(t *testing.T) {
	tasklet := &fakeTasklet{name: "vacation-update", exit: model.ExitStatusCompleted}
	listener := &recordingListener{}
	l, repo := newLauncher([]ports.Tasklet{tasklet}, []ports.TaskExecutionListener{listener})

	execution, err := l.Launch(context.Background(), "vacation-update", model.TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, 1, tasklet.ran)
	assert.Equal(t, model.TaskStatusCompleted, execution.Status)
	assert.Equal(t, model.ExitStatusCompleted, execution.ExitStatus)
	assert.NotNil(t, execution.EndTime)

	persisted, err := repo.FindTaskExecutionByID(context.Background(), execution.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, persisted.Status)

	assert.Equal(t, []string{"vacation-update"}, listener.before)
	require.Len(t, listener.after, 1)
	assert.Equal(t, model.TaskStatusCompleted, listener.after[0])
}

func TestLaunch_TaskFailure(t *testing.T) {
	tasklet := &fakeTasklet{name: "vacation-update", exit: model.ExitStatusFailed, err: errors.New("merge failed")}
	l, repo := newLauncher([]ports.Tasklet{tasklet}, nil)

	execution, err := l.Launch(context.Background(), "vacation-update", model.TriggerScheduled)
	require.NoError(t, err)

	assert.Equal(t, model.TaskStatusFailed, execution.Status)
	assert.Equal(t, model.ExitStatusFailed, execution.ExitStatus)
	assert.NotEmpty(t, execution.Failures)

	persisted, err := repo.FindTaskExecutionByID(context.Background(), execution.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusFailed, persisted.Status)
}

func TestLaunch_NoOpExit(t *testing.T) {
	tasklet := &fakeTasklet{name: "vacation-update", exit: model.ExitStatusNoOp}
	l, _ := newLauncher([]ports.Tasklet{tasklet}, nil)

	execution, err := l.Launch(context.Background(), "vacation-update", model.TriggerScheduled)
	require.NoError(t, err)

	assert.Equal(t, model.TaskStatusCompleted, execution.Status)
	assert.Equal(t, model.ExitStatusNoOp, execution.ExitStatus)
}

func TestLaunch_UnknownTask(t *testing.T) {
	l, _ := newLauncher(nil, nil)

	_, err := l.Launch(context.Background(), "unknown", model.TriggerManual)
	assert.Error(t, err)
}

type recordingNotifier struct {
	completions []model.TaskStatus
}

func (n *recordingNotifier) NotifyTaskCompletion(ctx context.Context, execution *model.TaskExecution) {
	n.completions = append(n.completions, execution.Status)
}

func TestLaunch_NotifiesOnCompletion(t *testing.T) {
	ok := &fakeTasklet{name: "vacation-update", exit: model.ExitStatusCompleted}
	bad := &fakeTasklet{name: "vacation-notify", exit: model.ExitStatusFailed, err: errors.New("channel down")}
	notifier := &recordingNotifier{}

	repo := inmemory.NewInMemoryTaskExecutionRepository()
	l := NewSimpleTaskLauncher(LauncherParams{
		Repo:      repo,
		Tasklets:  []ports.Tasklet{ok, bad},
		Notifiers: []ports.Notifier{notifier},
	})

	_, err := l.Launch(context.Background(), "vacation-update", model.TriggerManual)
	require.NoError(t, err)
	_, err = l.Launch(context.Background(), "vacation-notify", model.TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, []model.TaskStatus{model.TaskStatusCompleted, model.TaskStatusFailed}, notifier.completions)
}

type panickyTasklet struct{}

func (t *panickyTasklet) Name() string { return "panicky" }

func (t *panickyTasklet) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	panic("boom")
}

func TestLaunch_PanicBecomesFailure(t *testing.T) {
	l, _ := newLauncher([]ports.Tasklet{&panickyTasklet{}}, nil)

	execution, err := l.Launch(context.Background(), "panicky", model.TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, model.TaskStatusFailed, execution.Status)
}
