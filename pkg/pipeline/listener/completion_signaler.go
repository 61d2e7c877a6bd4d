package listener

import (
	"context"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// CompletionSignaler is a TaskExecutionListener that publishes finished task
// executions on a channel, signaling completion to downstream components.
// Tasks that must run after another task subscribe to Events.
type CompletionSignaler struct {
	events chan *model.TaskExecution
}

// NewCompletionSignaler creates a new CompletionSignaler. The channel is
// buffered so a slow subscriber does not block task completion.
func NewCompletionSignaler() *CompletionSignaler {
	return &CompletionSignaler{
		events: make(chan *model.TaskExecution, 16),
	}
}

// Events returns the channel on which finished executions are published.
func (s *CompletionSignaler) Events() <-chan *model.TaskExecution {
	return s.events
}

func (s *CompletionSignaler) BeforeTask(ctx context.Context, execution *model.TaskExecution) {
	// No-op
}

// AfterTask publishes the finished execution. If no subscriber is draining
// the channel and the buffer is full, the event is dropped with a warning
// rather than blocking the launcher.
func (s *CompletionSignaler) AfterTask(ctx context.Context, execution *model.TaskExecution) {
	if !execution.Status.IsFinished() {
		return
	}
	select {
	case s.events <- execution:
	default:
		logger.Warnf("CompletionSignaler: event buffer full, dropping completion of task '%s' (ID: %s)", execution.TaskName, execution.ID)
	}
}

var _ ports.TaskExecutionListener = (*CompletionSignaler)(nil)
