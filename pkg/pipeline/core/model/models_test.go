package model_test

import (
	"errors"
	"testing"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"

	"github.com/stretchr/testify/assert"
)

func newTestExecution(status model.TaskStatus) *model.TaskExecution {
	te := model.NewTaskExecution("updateVacationSpots", model.TriggerScheduled)
	te.Status = status
	return te
}

func TestTaskExecution_TransitionTo(t *testing.T) {
	te := newTestExecution(model.TaskStatusStarting)
	assert.NoError(t, te.TransitionTo(model.TaskStatusStarted))
	assert.Equal(t, model.TaskStatusStarted, te.Status)

	// STARTING -> FAILED (setup failure before the task body ran)
	te = newTestExecution(model.TaskStatusStarting)
	assert.NoError(t, te.TransitionTo(model.TaskStatusFailed))

	te = newTestExecution(model.TaskStatusStarted)
	assert.NoError(t, te.TransitionTo(model.TaskStatusCompleted))

	// Terminal states reject further transitions.
	te = newTestExecution(model.TaskStatusCompleted)
	assert.Error(t, te.TransitionTo(model.TaskStatusStarted))

	te = newTestExecution(model.TaskStatusFailed)
	assert.Error(t, te.TransitionTo(model.TaskStatusCompleted))
}

func TestTaskExecution_MarkAsCompleted(t *testing.T) {
	te := newTestExecution(model.TaskStatusStarted)
	te.MarkAsCompleted(model.ExitStatusNoOp)

	assert.Equal(t, model.TaskStatusCompleted, te.Status)
	assert.Equal(t, model.ExitStatusNoOp, te.ExitStatus)
	assert.NotNil(t, te.EndTime)
	assert.True(t, te.Status.IsFinished())
}

func TestTaskExecution_MarkAsFailed_DeduplicatesFailures(t *testing.T) {
	te := newTestExecution(model.TaskStatusStarted)
	err := errors.New("upstream snapshot missing")
	te.MarkAsFailed(err)
	te.AddFailure(err)

	assert.Equal(t, model.TaskStatusFailed, te.Status)
	assert.Equal(t, model.ExitStatusFailed, te.ExitStatus)
	assert.Len(t, te.Failures, 1)
}

func TestFailureList_RoundTrip(t *testing.T) {
	fl := model.FailureList{"a", "b"}
	v, err := fl.Value()
	assert.NoError(t, err)

	var got model.FailureList
	assert.NoError(t, got.Scan(v))
	assert.Equal(t, fl, got)

	var empty model.FailureList
	assert.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestCounters_Add(t *testing.T) {
	c := make(model.Counters)
	c.Add("rows_merged", 3)
	c.Add("rows_merged", 2)
	assert.Equal(t, int64(5), c["rows_merged"])
}
