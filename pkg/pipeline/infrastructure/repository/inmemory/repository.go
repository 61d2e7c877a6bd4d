// Package inmemory provides an in-memory implementation of the
// TaskExecutionRepository interface. It stores all run history in maps,
// suitable for testing and scenarios where persistence is not required.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
)

// InMemoryTaskExecutionRepository is an in-memory implementation of the
// TaskExecutionRepository interface.
type InMemoryTaskExecutionRepository struct {
	taskExecutions map[string]*model.TaskExecution
	mu             sync.RWMutex
}

// NewInMemoryTaskExecutionRepository creates and initializes a new
// InMemoryTaskExecutionRepository instance.
func NewInMemoryTaskExecutionRepository() *InMemoryTaskExecutionRepository {
	return &InMemoryTaskExecutionRepository{
		taskExecutions: make(map[string]*model.TaskExecution),
	}
}

// SaveTaskExecution persists a new TaskExecution.
// It returns an error if a TaskExecution with the same ID already exists.
func (r *InMemoryTaskExecutionRepository) SaveTaskExecution(ctx context.Context, taskExecution *model.TaskExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.taskExecutions[taskExecution.ID]; exists {
		return fmt.Errorf("TaskExecution with ID %s already exists", taskExecution.ID)
	}
	cloned := *taskExecution
	r.taskExecutions[taskExecution.ID] = &cloned
	return nil
}

// UpdateTaskExecution updates an existing TaskExecution.
// It returns an error if the TaskExecution with the given ID is not found.
func (r *InMemoryTaskExecutionRepository) UpdateTaskExecution(ctx context.Context, taskExecution *model.TaskExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.taskExecutions[taskExecution.ID]; !exists {
		return fmt.Errorf("TaskExecution with ID %s not found for update", taskExecution.ID)
	}
	cloned := *taskExecution
	r.taskExecutions[taskExecution.ID] = &cloned
	return nil
}

// FindTaskExecutionByID finds a TaskExecution by its ID.
// The returned object is a copy to prevent external modification of internal state.
func (r *InMemoryTaskExecutionRepository) FindTaskExecutionByID(ctx context.Context, id string) (*model.TaskExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	taskExecution, ok := r.taskExecutions[id]
	if !ok {
		return nil, repository.ErrTaskExecutionNotFound
	}

	cloned := *taskExecution
	return &cloned, nil
}

// FindLatestTaskExecutionByName finds the most recently created TaskExecution
// for the given task name.
func (r *InMemoryTaskExecutionRepository) FindLatestTaskExecutionByName(ctx context.Context, taskName string) (*model.TaskExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.TaskExecution
	for _, te := range r.taskExecutions {
		if te.TaskName != taskName {
			continue
		}
		if latest == nil || te.CreateTime.After(latest.CreateTime) {
			latest = te
		}
	}

	if latest == nil {
		return nil, repository.ErrTaskExecutionNotFound
	}

	cloned := *latest
	return &cloned, nil
}

// FindRecentTaskExecutions returns up to limit TaskExecutions sorted by
// creation time in descending order.
func (r *InMemoryTaskExecutionRepository) FindRecentTaskExecutions(ctx context.Context, limit int) ([]*model.TaskExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	executions := make([]*model.TaskExecution, 0, len(r.taskExecutions))
	for _, te := range r.taskExecutions {
		cloned := *te
		executions = append(executions, &cloned)
	}

	sort.Slice(executions, func(i, j int) bool {
		return executions[j].CreateTime.Before(executions[i].CreateTime)
	})

	if limit > 0 && len(executions) > limit {
		executions = executions[:limit]
	}

	return executions, nil
}

// Close releases resources used by the repository.
// An in-memory repository holds no external resources, so this always returns nil.
func (r *InMemoryTaskExecutionRepository) Close() error {
	return nil
}
