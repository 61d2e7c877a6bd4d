package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
)

func newExecution(t *testing.T, name string) *model.TaskExecution {
	t.Helper()
	return model.NewTaskExecution(name, model.TriggerScheduled)
}

func TestSaveAndFindTaskExecution(t *testing.T) {
	repo := NewInMemoryTaskExecutionRepository()
	ctx := context.Background()

	te := newExecution(t, "vacation-update")
	require.NoError(t, repo.SaveTaskExecution(ctx, te))

	found, err := repo.FindTaskExecutionByID(ctx, te.ID)
	require.NoError(t, err)
	assert.Equal(t, te.ID, found.ID)
	assert.Equal(t, "vacation-update", found.TaskName)

	// Duplicate save is rejected.
	assert.Error(t, repo.SaveTaskExecution(ctx, te))
}

func TestFindTaskExecutionByID_NotFound(t *testing.T) {
	repo := NewInMemoryTaskExecutionRepository()

	_, err := repo.FindTaskExecutionByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrTaskExecutionNotFound)
}

func TestUpdateTaskExecution(t *testing.T) {
	repo := NewInMemoryTaskExecutionRepository()
	ctx := context.Background()

	te := newExecution(t, "vacation-update")
	require.NoError(t, repo.SaveTaskExecution(ctx, te))

	te.MarkAsStarted()
	require.NoError(t, repo.UpdateTaskExecution(ctx, te))

	found, err := repo.FindTaskExecutionByID(ctx, te.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusStarted, found.Status)

	unknown := newExecution(t, "vacation-update")
	assert.Error(t, repo.UpdateTaskExecution(ctx, unknown))
}

func TestFindLatestTaskExecutionByName(t *testing.T) {
	repo := NewInMemoryTaskExecutionRepository()
	ctx := context.Background()

	first := newExecution(t, "vacation-update")
	first.CreateTime = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.SaveTaskExecution(ctx, first))

	second := newExecution(t, "vacation-update")
	second.CreateTime = time.Now().Add(-1 * time.Hour)
	require.NoError(t, repo.SaveTaskExecution(ctx, second))

	other := newExecution(t, "vacation-notify")
	require.NoError(t, repo.SaveTaskExecution(ctx, other))

	latest, err := repo.FindLatestTaskExecutionByName(ctx, "vacation-update")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	_, err = repo.FindLatestTaskExecutionByName(ctx, "unknown-task")
	assert.ErrorIs(t, err, repository.ErrTaskExecutionNotFound)
}

func TestFindRecentTaskExecutions(t *testing.T) {
	repo := NewInMemoryTaskExecutionRepository()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 5; i++ {
		te := newExecution(t, "vacation-update")
		te.CreateTime = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.SaveTaskExecution(ctx, te))
		ids = append(ids, te.ID)
	}

	recent, err := repo.FindRecentTaskExecutions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	// Most recently created first.
	assert.Equal(t, ids[4], recent[0].ID)
	assert.Equal(t, ids[3], recent[1].ID)
	assert.Equal(t, ids[2], recent[2].ID)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	repo := NewInMemoryTaskExecutionRepository()
	ctx := context.Background()

	te := newExecution(t, "vacation-update")
	require.NoError(t, repo.SaveTaskExecution(ctx, te))

	found, err := repo.FindTaskExecutionByID(ctx, te.ID)
	require.NoError(t, err)

	found.TaskName = "mutated"

	again, err := repo.FindTaskExecutionByID(ctx, te.ID)
	require.NoError(t, err)
	assert.Equal(t, "vacation-update", again.TaskName)
}
