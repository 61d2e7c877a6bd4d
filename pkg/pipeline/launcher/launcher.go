// Package launcher runs registered tasklets, recording every execution in
// the task execution repository and notifying listeners around each run.
package launcher

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/fx"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

const componentName = "TaskLauncher"

// TaskLauncher launches a named task and returns its finished execution.
type TaskLauncher interface {
	// Launch runs the named task synchronously. The returned error reports
	// a failure of the launch process itself; execution failures are
	// recorded on the returned TaskExecution.
	Launch(ctx context.Context, taskName string, trigger model.Trigger) (*model.TaskExecution, error)
}

// SimpleTaskLauncher implements TaskLauncher for in-process execution.
type SimpleTaskLauncher struct {
	repo      repository.TaskExecutionRepository
	tasklets  map[string]ports.Tasklet
	listeners []ports.TaskExecutionListener
	notifiers []ports.Notifier
	mu        sync.Mutex
}

// LauncherParams collects the dependencies of NewSimpleTaskLauncher.
type LauncherParams struct {
	fx.In
	Repo      repository.TaskExecutionRepository
	Tasklets  []ports.Tasklet               `group:"tasklets"`
	Listeners []ports.TaskExecutionListener `group:"task_listeners"`
	Notifiers []ports.Notifier              `group:"notifiers"`
}

// NewSimpleTaskLauncher creates a new SimpleTaskLauncher.
func NewSimpleTaskLauncher(p LauncherParams) *SimpleTaskLauncher {
	tasklets := make(map[string]ports.Tasklet, len(p.Tasklets))
	for _, t := range p.Tasklets {
		tasklets[t.Name()] = t
	}
	return &SimpleTaskLauncher{
		repo:      p.Repo,
		tasklets:  tasklets,
		listeners: p.Listeners,
		notifiers: p.Notifiers,
	}
}

// Launch runs the named task. The run is serialized: overlapping launches
// of any task wait for the in-flight one to finish.
func (l *SimpleTaskLauncher) Launch(ctx context.Context, taskName string, trigger model.Trigger) (*model.TaskExecution, error) {
	tasklet, ok := l.tasklets[taskName]
	if !ok {
		return nil, exception.New(componentName, fmt.Sprintf("no tasklet registered for task '%s'", taskName), nil, false)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	execution := model.NewTaskExecution(taskName, trigger)
	if err := l.repo.SaveTaskExecution(ctx, execution); err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("failed to persist new execution for task '%s'", taskName), err, true)
	}

	execution.MarkAsStarted()
	if err := l.repo.UpdateTaskExecution(ctx, execution); err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("failed to mark execution started for task '%s'", taskName), err, true)
	}

	for _, listener := range l.listeners {
		listener.BeforeTask(ctx, execution)
	}

	logger.Infof("Launching task '%s' (ID: %s, Trigger: %s)", taskName, execution.ID, trigger)

	exitStatus, taskErr := l.runTasklet(ctx, tasklet, execution)

	if taskErr != nil {
		execution.MarkAsFailed(taskErr)
		logger.Errorf("Task '%s' (ID: %s) failed: %v", taskName, execution.ID, taskErr)
	} else {
		execution.MarkAsCompleted(exitStatus)
		logger.Infof("Task '%s' (ID: %s) completed with exit status '%s'", taskName, execution.ID, execution.ExitStatus)
	}

	if err := l.repo.UpdateTaskExecution(ctx, execution); err != nil {
		logger.Errorf("Failed to persist terminal state of task '%s' (ID: %s): %v", taskName, execution.ID, err)
	}

	for _, listener := range l.listeners {
		listener.AfterTask(ctx, execution)
	}

	for _, notifier := range l.notifiers {
		notifier.NotifyTaskCompletion(ctx, execution)
	}

	return execution, nil
}

// runTasklet executes the tasklet, converting panics into failures so a
// misbehaving task cannot take down the scheduler.
func (l *SimpleTaskLauncher) runTasklet(ctx context.Context, tasklet ports.Tasklet, execution *model.TaskExecution) (exit model.ExitStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			exit = model.ExitStatusFailed
			err = exception.New(componentName, fmt.Sprintf("task '%s' panicked: %v", execution.TaskName, r), nil, false)
		}
	}()
	return tasklet.Execute(ctx, execution)
}

var _ TaskLauncher = (*SimpleTaskLauncher)(nil)
