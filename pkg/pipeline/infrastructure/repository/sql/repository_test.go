package sql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
	dbconfig "github.com/tripwind/tripwind/pkg/pipeline/adapter/database/config"
	gormadapter "github.com/tripwind/tripwind/pkg/pipeline/adapter/database/gorm"
	"github.com/tripwind/tripwind/pkg/pipeline/core/adapter"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
	sqlrepo "github.com/tripwind/tripwind/pkg/pipeline/infrastructure/repository/sql"
)

// testSingleConnectionResolver resolves every name to the same connection.
type testSingleConnectionResolver struct {
	conn database.DBConnection
	err  error
}

func (r *testSingleConnectionResolver) ResolveDBConnection(ctx context.Context, name string) (database.DBConnection, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.conn, nil
}

func (r *testSingleConnectionResolver) ResolveConnection(ctx context.Context, name string) (adapter.ResourceConnection, error) {
	return r.ResolveDBConnection(ctx, name)
}

func setupRepositoryMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, repository.TaskExecutionRepository) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	cfg := dbconfig.DatabaseConfig{Type: "mysql"}
	conn := gormadapter.NewGormDBAdapter(gormDB, cfg, "metadata")

	resolver := &testSingleConnectionResolver{conn: conn}
	repo := sqlrepo.NewSQLTaskExecutionRepository(resolver, "metadata")

	t.Cleanup(func() {
		mock.ExpectClose()
		db, _ := gormDB.DB()
		db.Close()
	})

	return gormDB, mock, repo
}

func executionColumns() []string {
	return []string{
		"id", "task_name", "trigger_type", "start_time", "end_time",
		"status", "exit_status", "failures", "counters",
		"create_time", "last_updated", "version",
	}
}

func executionRow(rows *sqlmock.Rows, id, taskName string, at time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, taskName, "SCHEDULED", at, nil,
		"COMPLETED", "COMPLETED", `["boom"]`, `{"rows_merged":3}`,
		at, at, 1,
	)
}

func TestSQLTaskExecutionRepository_SaveTaskExecution(t *testing.T) {
	_, mock, repo := setupRepositoryMock(t)

	mock.ExpectExec("INSERT INTO `task_executions`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	execution := model.NewTaskExecution("vacation_spot_update", model.TriggerScheduled)
	err := repo.SaveTaskExecution(context.Background(), execution)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTaskExecutionRepository_UpdateTaskExecution(t *testing.T) {
	_, mock, repo := setupRepositoryMock(t)

	mock.ExpectExec("UPDATE `task_executions` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	execution := model.NewTaskExecution("vacation_spot_update", model.TriggerScheduled)
	execution.MarkAsStarted()
	err := repo.UpdateTaskExecution(context.Background(), execution)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTaskExecutionRepository_UpdateTaskExecution_NotFound(t *testing.T) {
	_, mock, repo := setupRepositoryMock(t)

	mock.ExpectExec("UPDATE `task_executions` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	execution := model.NewTaskExecution("vacation_spot_update", model.TriggerScheduled)
	execution.MarkAsStarted()
	err := repo.UpdateTaskExecution(context.Background(), execution)
	assert.ErrorIs(t, err, repository.ErrTaskExecutionNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTaskExecutionRepository_FindTaskExecutionByID(t *testing.T) {
	_, mock, repo := setupRepositoryMock(t)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := executionRow(sqlmock.NewRows(executionColumns()), "exec-1", "vacation_spot_update", at)
	mock.ExpectQuery("SELECT \\* FROM `task_executions`").WillReturnRows(rows)

	execution, err := repo.FindTaskExecutionByID(context.Background(), "exec-1")
	require.NoError(t, err)
	assert.Equal(t, "exec-1", execution.ID)
	assert.Equal(t, "vacation_spot_update", execution.TaskName)
	assert.Equal(t, model.TriggerScheduled, execution.Trigger)
	assert.Equal(t, model.FailureList{"boom"}, execution.Failures)
	assert.Equal(t, int64(3), execution.Counters["rows_merged"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTaskExecutionRepository_FindTaskExecutionByID_NotFound(t *testing.T) {
	_, mock, repo := setupRepositoryMock(t)

	mock.ExpectQuery("SELECT \\* FROM `task_executions`").
		WillReturnRows(sqlmock.NewRows(executionColumns()))

	_, err := repo.FindTaskExecutionByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrTaskExecutionNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTaskExecutionRepository_FindLatestTaskExecutionByName(t *testing.T) {
	_, mock, repo := setupRepositoryMock(t)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := executionRow(sqlmock.NewRows(executionColumns()), "exec-2", "vacation_spot_notification", at)
	mock.ExpectQuery("ORDER BY create_time DESC").WillReturnRows(rows)

	execution, err := repo.FindLatestTaskExecutionByName(context.Background(), "vacation_spot_notification")
	require.NoError(t, err)
	assert.Equal(t, "exec-2", execution.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTaskExecutionRepository_FindRecentTaskExecutions_TableMissing(t *testing.T) {
	_, mock, repo := setupRepositoryMock(t)

	mock.ExpectQuery("SELECT \\* FROM `task_executions`").
		WillReturnError(errors.New("Error 1146: Table 'tripwind.task_executions' doesn't exist"))

	executions, err := repo.FindRecentTaskExecutions(context.Background(), 10)
	assert.NoError(t, err)
	assert.Empty(t, executions)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTaskExecutionRepository_ResolverFailure(t *testing.T) {
	resolver := &testSingleConnectionResolver{err: errors.New("no such connection")}
	repo := sqlrepo.NewSQLTaskExecutionRepository(resolver, "metadata")

	execution := model.NewTaskExecution("vacation_spot_update", model.TriggerScheduled)
	err := repo.SaveTaskExecution(context.Background(), execution)
	assert.Error(t, err)
}
