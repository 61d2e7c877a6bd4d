// Package model defines the run-history domain of the pipeline: task
// executions, their statuses, and the guarded transitions between them.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"

	"github.com/google/uuid"
)

// TaskStatus represents the state of a task execution.
type TaskStatus string

const (
	TaskStatusStarting  TaskStatus = "STARTING"
	TaskStatusStarted   TaskStatus = "STARTED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusFailed    TaskStatus = "FAILED"
	TaskStatusUnknown   TaskStatus = "UNKNOWN"
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	return string(s)
}

// IsFinished reports whether the status is terminal.
func (s TaskStatus) IsFinished() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// ExitStatus is the detailed outcome recorded when an execution finishes.
type ExitStatus string

const (
	ExitStatusUnknown   ExitStatus = "UNKNOWN"
	ExitStatusCompleted ExitStatus = "COMPLETED"
	ExitStatusFailed    ExitStatus = "FAILED"
	ExitStatusNoOp      ExitStatus = "NO_OP"
)

// String returns the ExitStatus as a string.
func (s ExitStatus) String() string {
	return string(s)
}

// Trigger records how an execution was started.
type Trigger string

const (
	// TriggerScheduled marks executions started by the interval scheduler.
	TriggerScheduled Trigger = "SCHEDULED"
	// TriggerManual marks executions started by an operator.
	TriggerManual Trigger = "MANUAL"
	// TriggerUpstream marks executions started by the completion of another task.
	TriggerUpstream Trigger = "UPSTREAM"
)

// FailureList holds the error messages collected during an execution.
type FailureList []string

// Value implements driver.Valuer, serializing the list as JSON.
func (fl FailureList) Value() (driver.Value, error) {
	if fl == nil {
		return "[]", nil
	}
	data, err := json.Marshal(fl)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner, deserializing a JSON array.
func (fl *FailureList) Scan(value interface{}) error {
	if value == nil {
		*fl = make(FailureList, 0)
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported Scan type for FailureList: %T", value)
	}

	if len(b) == 0 {
		*fl = make(FailureList, 0)
		return nil
	}

	if err := json.Unmarshal(b, fl); err != nil {
		return fmt.Errorf("failed to unmarshal FailureList JSON: %w", err)
	}
	return nil
}

// Counters holds named integer counters recorded by a task (rows read,
// rows merged, matches found, and so on).
type Counters map[string]int64

// Value implements driver.Valuer, serializing the counters as JSON.
func (c Counters) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner, deserializing a JSON object.
func (c *Counters) Scan(value interface{}) error {
	if value == nil {
		*c = make(Counters)
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported Scan type for Counters: %T", value)
	}

	if len(b) == 0 {
		*c = make(Counters)
		return nil
	}

	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("failed to unmarshal Counters JSON: %w", err)
	}
	return nil
}

// Add increments a named counter.
func (c Counters) Add(name string, delta int64) {
	c[name] = c[name] + delta
}

// TaskExecution records a single run of a pipeline task. It is the row
// exposed by the inspectable run history.
type TaskExecution struct {
	ID          string
	TaskName    string
	Trigger     Trigger
	StartTime   time.Time
	EndTime     *time.Time
	Status      TaskStatus
	ExitStatus  ExitStatus
	Failures    FailureList
	Counters    Counters
	CreateTime  time.Time
	LastUpdated time.Time
	Version     int
}

// NewID generates a new UUID string.
func NewID() string {
	return uuid.New().String()
}

// NewTaskExecution creates a TaskExecution in the STARTING state.
func NewTaskExecution(taskName string, trigger Trigger) *TaskExecution {
	now := time.Now()
	return &TaskExecution{
		ID:          NewID(),
		TaskName:    taskName,
		Trigger:     trigger,
		StartTime:   now,
		Status:      TaskStatusStarting,
		ExitStatus:  ExitStatusUnknown,
		Failures:    make(FailureList, 0),
		Counters:    make(Counters),
		CreateTime:  now,
		LastUpdated: now,
		Version:     0,
	}
}

// isValidTransition checks whether a status transition is allowed.
func isValidTransition(current, next TaskStatus) bool {
	switch current {
	case TaskStatusStarting:
		return next == TaskStatusStarted || next == TaskStatusFailed
	case TaskStatusStarted:
		return next == TaskStatusCompleted || next == TaskStatusFailed
	case TaskStatusCompleted, TaskStatusFailed:
		return false
	default:
		return false
	}
}

// TransitionTo moves the execution to a new status, rejecting invalid moves.
func (te *TaskExecution) TransitionTo(newStatus TaskStatus) error {
	if !isValidTransition(te.Status, newStatus) {
		return fmt.Errorf("TaskExecution (ID: %s): invalid state transition: %s -> %s", te.ID, te.Status, newStatus)
	}
	te.Status = newStatus
	return nil
}

// MarkAsStarted updates the execution status to STARTED.
func (te *TaskExecution) MarkAsStarted() {
	if err := te.TransitionTo(TaskStatusStarted); err != nil {
		logger.Warnf("Could not update TaskExecution (ID: %s) status to STARTED: %v", te.ID, err)
		te.Status = TaskStatusStarted
	}
	te.LastUpdated = time.Now()
}

// MarkAsCompleted updates the execution status to COMPLETED.
func (te *TaskExecution) MarkAsCompleted(exit ExitStatus) {
	if err := te.TransitionTo(TaskStatusCompleted); err != nil {
		logger.Warnf("Could not update TaskExecution (ID: %s) status to COMPLETED: %v", te.ID, err)
		te.Status = TaskStatusCompleted
	}
	if exit == "" || exit == ExitStatusUnknown {
		exit = ExitStatusCompleted
	}
	te.ExitStatus = exit
	now := time.Now()
	te.EndTime = &now
	te.LastUpdated = now
}

// MarkAsFailed updates the execution status to FAILED and records the error.
func (te *TaskExecution) MarkAsFailed(err error) {
	if terr := te.TransitionTo(TaskStatusFailed); terr != nil {
		logger.Warnf("Could not update TaskExecution (ID: %s) status to FAILED: %v", te.ID, terr)
		te.Status = TaskStatusFailed
	}
	te.ExitStatus = ExitStatusFailed
	now := time.Now()
	te.EndTime = &now
	te.LastUpdated = now
	if err != nil {
		te.AddFailure(err)
	}
}

// AddFailure appends an error message to the failure list, skipping
// duplicates.
func (te *TaskExecution) AddFailure(err error) {
	if err == nil {
		return
	}
	errMsg := exception.ExtractErrorMessage(err)

	for _, existing := range te.Failures {
		if existing == errMsg {
			logger.Debugf("Skipped adding duplicate error '%s' to TaskExecution (ID: %s).", errMsg, te.ID)
			return
		}
	}

	te.Failures = append(te.Failures, errMsg)
	te.LastUpdated = time.Now()
}

// Duration returns the elapsed wall time of the execution, zero when the
// execution has not finished.
func (te *TaskExecution) Duration() time.Duration {
	if te.EndTime == nil {
		return 0
	}
	return te.EndTime.Sub(te.StartTime)
}
