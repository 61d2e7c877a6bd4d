// Package repository defines the persistence port for the pipeline's run
// history.
package repository

import (
	"context"
	"errors"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

// ErrTaskExecutionNotFound is returned when no execution matches a query.
var ErrTaskExecutionNotFound = errors.New("task execution not found")

// TaskExecutionRepository persists and retrieves task executions. The run
// history it exposes is read-only for operators; only the launcher writes.
type TaskExecutionRepository interface {
	// SaveTaskExecution persists a new execution. Saving an ID that already
	// exists is an error.
	SaveTaskExecution(ctx context.Context, execution *model.TaskExecution) error
	// UpdateTaskExecution updates an existing execution.
	UpdateTaskExecution(ctx context.Context, execution *model.TaskExecution) error
	// FindTaskExecutionByID finds an execution by its ID.
	FindTaskExecutionByID(ctx context.Context, id string) (*model.TaskExecution, error)
	// FindLatestTaskExecutionByName returns the most recently created
	// execution for the given task name.
	FindLatestTaskExecutionByName(ctx context.Context, taskName string) (*model.TaskExecution, error)
	// FindRecentTaskExecutions returns up to limit executions ordered by
	// create time descending.
	FindRecentTaskExecutions(ctx context.Context, limit int) ([]*model.TaskExecution, error)
	// Close releases any resources held by the repository.
	Close() error
}
