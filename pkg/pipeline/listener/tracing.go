package listener

import (
	"context"
	"sync"

	"github.com/tripwind/tripwind/pkg/pipeline/core/metrics"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
)

// TracingTaskListener opens a span for each task execution and closes it
// when the execution finishes.
type TracingTaskListener struct {
	tracer metrics.Tracer

	mu       sync.Mutex
	spanEnds map[string]func()
}

// NewTracingTaskListener creates a new TracingTaskListener.
func NewTracingTaskListener(tracer metrics.Tracer) *TracingTaskListener {
	return &TracingTaskListener{
		tracer:   tracer,
		spanEnds: make(map[string]func()),
	}
}

func (l *TracingTaskListener) BeforeTask(ctx context.Context, execution *model.TaskExecution) {
	_, end := l.tracer.StartTaskSpan(ctx, execution)
	l.mu.Lock()
	l.spanEnds[execution.ID] = end
	l.mu.Unlock()
}

func (l *TracingTaskListener) AfterTask(ctx context.Context, execution *model.TaskExecution) {
	l.mu.Lock()
	end, ok := l.spanEnds[execution.ID]
	delete(l.spanEnds, execution.ID)
	l.mu.Unlock()

	if ok {
		end()
	}
}

var _ ports.TaskExecutionListener = (*TracingTaskListener)(nil)
