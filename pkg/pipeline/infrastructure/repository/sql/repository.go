// Package sql provides a database-backed implementation of the
// TaskExecutionRepository interface.
package sql

import (
	"context"
	"fmt"

	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
)

const componentName = "SQLTaskExecutionRepository"

// SQLTaskExecutionRepository implements repository.TaskExecutionRepository
// on top of a resolved database connection.
type SQLTaskExecutionRepository struct {
	dbResolver database.DBConnectionResolver
	dbName     string
}

// NewSQLTaskExecutionRepository creates a new SQLTaskExecutionRepository
// bound to the named database connection (e.g., "metadata").
func NewSQLTaskExecutionRepository(dbResolver database.DBConnectionResolver, dbName string) repository.TaskExecutionRepository {
	return &SQLTaskExecutionRepository{
		dbResolver: dbResolver,
		dbName:     dbName,
	}
}

func (r *SQLTaskExecutionRepository) getDBConnection(ctx context.Context) (database.DBConnection, error) {
	conn, err := r.dbResolver.ResolveDBConnection(ctx, r.dbName)
	if err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("failed to resolve DB connection '%s'", r.dbName), err, true)
	}
	return conn, nil
}

// SaveTaskExecution persists a new TaskExecution.
func (r *SQLTaskExecutionRepository) SaveTaskExecution(ctx context.Context, taskExecution *model.TaskExecution) error {
	entity := fromDomainTaskExecution(taskExecution)

	conn, err := r.getDBConnection(ctx)
	if err != nil {
		return err
	}

	if _, err := conn.ExecuteUpdate(ctx, entity, "CREATE", entity.TableName(), nil); err != nil {
		return exception.New(componentName, fmt.Sprintf("failed to save TaskExecution (ID: %s)", taskExecution.ID), err, true)
	}
	return nil
}

// UpdateTaskExecution updates an existing TaskExecution.
func (r *SQLTaskExecutionRepository) UpdateTaskExecution(ctx context.Context, taskExecution *model.TaskExecution) error {
	entity := fromDomainTaskExecution(taskExecution)

	conn, err := r.getDBConnection(ctx)
	if err != nil {
		return err
	}

	rows, err := conn.ExecuteUpdate(ctx, entity, "UPDATE", entity.TableName(), map[string]interface{}{"id": entity.ID})
	if err != nil {
		return exception.New(componentName, fmt.Sprintf("failed to update TaskExecution (ID: %s)", taskExecution.ID), err, true)
	}
	if rows == 0 {
		return repository.ErrTaskExecutionNotFound
	}
	return nil
}

// FindTaskExecutionByID finds a TaskExecution by its ID.
func (r *SQLTaskExecutionRepository) FindTaskExecutionByID(ctx context.Context, id string) (*model.TaskExecution, error) {
	conn, err := r.getDBConnection(ctx)
	if err != nil {
		return nil, err
	}

	var entities []taskExecutionEntity
	if err := conn.ExecuteQuery(ctx, &entities, map[string]interface{}{"id": id}); err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("failed to find TaskExecution (ID: %s)", id), err, true)
	}
	if len(entities) == 0 {
		return nil, repository.ErrTaskExecutionNotFound
	}
	return toDomainTaskExecution(&entities[0]), nil
}

// FindLatestTaskExecutionByName finds the most recently created TaskExecution
// for the given task name.
func (r *SQLTaskExecutionRepository) FindLatestTaskExecutionByName(ctx context.Context, taskName string) (*model.TaskExecution, error) {
	conn, err := r.getDBConnection(ctx)
	if err != nil {
		return nil, err
	}

	var entities []taskExecutionEntity
	err = conn.ExecuteQueryAdvanced(ctx, &entities, map[string]interface{}{"task_name": taskName}, "create_time DESC", 1)
	if err != nil {
		if conn.IsTableNotExistError(err) {
			return nil, repository.ErrTaskExecutionNotFound
		}
		return nil, exception.New(componentName, fmt.Sprintf("failed to find latest TaskExecution for task '%s'", taskName), err, true)
	}
	if len(entities) == 0 {
		return nil, repository.ErrTaskExecutionNotFound
	}
	return toDomainTaskExecution(&entities[0]), nil
}

// FindRecentTaskExecutions returns up to limit TaskExecutions sorted by
// creation time in descending order.
func (r *SQLTaskExecutionRepository) FindRecentTaskExecutions(ctx context.Context, limit int) ([]*model.TaskExecution, error) {
	conn, err := r.getDBConnection(ctx)
	if err != nil {
		return nil, err
	}

	var entities []taskExecutionEntity
	err = conn.ExecuteQueryAdvanced(ctx, &entities, nil, "create_time DESC", limit)
	if err != nil {
		if conn.IsTableNotExistError(err) {
			return nil, nil
		}
		return nil, exception.New(componentName, "failed to list recent TaskExecutions", err, true)
	}

	executions := make([]*model.TaskExecution, 0, len(entities))
	for i := range entities {
		executions = append(executions, toDomainTaskExecution(&entities[i]))
	}
	return executions, nil
}

// Close releases resources used by the repository. Connections are owned by
// the providers, so there is nothing to close here.
func (r *SQLTaskExecutionRepository) Close() error {
	return nil
}
