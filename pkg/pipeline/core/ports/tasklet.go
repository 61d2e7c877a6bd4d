package ports

import (
	"context"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

// Tasklet is a single unit of pipeline work executed by the TaskLauncher.
// Execute runs the whole task and returns its exit status. Counters and
// failures may be recorded on the passed execution.
type Tasklet interface {
	// Name returns the task name under which executions are recorded.
	Name() string
	// Execute runs the task. A returned error marks the execution FAILED;
	// the exit status is recorded either way.
	Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error)
}

// TaskletGroup is the Fx group name used to collect all Tasklet implementations.
const TaskletGroup = "tasklets"
