package ports

import (
	"context"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

// TaskExecutionListener receives callbacks around a task execution.
type TaskExecutionListener interface {
	// BeforeTask is called after the execution transitions to STARTED
	// and before the tasklet runs.
	BeforeTask(ctx context.Context, execution *model.TaskExecution)
	// AfterTask is called after the execution reaches a terminal state.
	AfterTask(ctx context.Context, execution *model.TaskExecution)
}

// TaskListenerGroup is the Fx group name used to collect all
// TaskExecutionListener implementations.
const TaskListenerGroup = "task_listeners"
