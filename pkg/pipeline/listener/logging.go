// Package listener provides TaskExecutionListener implementations that hook
// logging, metrics, tracing, and completion signaling into task runs.
package listener

import (
	"context"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// LoggingTaskListener logs the start and end of every task execution.
type LoggingTaskListener struct{}

// NewLoggingTaskListener creates a new LoggingTaskListener.
func NewLoggingTaskListener() *LoggingTaskListener {
	return &LoggingTaskListener{}
}

func (l *LoggingTaskListener) BeforeTask(ctx context.Context, execution *model.TaskExecution) {
	logger.Infof("TaskExecutionListener: BeforeTask - TaskName: %s, ID: %s, Trigger: %s", execution.TaskName, execution.ID, execution.Trigger)
}

func (l *LoggingTaskListener) AfterTask(ctx context.Context, execution *model.TaskExecution) {
	logger.Infof("TaskExecutionListener: AfterTask - TaskName: %s, Status: %s, ExitStatus: %s, Duration: %s",
		execution.TaskName, execution.Status, execution.ExitStatus, execution.Duration())
}

var _ ports.TaskExecutionListener = (*LoggingTaskListener)(nil)
