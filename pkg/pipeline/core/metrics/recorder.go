// Package metrics defines the observability ports of the pipeline core.
// Concrete backends live under infrastructure/metrics; NoOp implementations
// here are the fallback when no backend is wired.
package metrics

import (
	"context"
	"time"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

// MetricRecorder records metrics about task executions. Implementations
// must be safe for concurrent use.
type MetricRecorder interface {
	// RecordTaskStart records that a task execution started.
	RecordTaskStart(ctx context.Context, execution *model.TaskExecution)
	// RecordTaskEnd records a finished task execution, including its
	// terminal status and duration.
	RecordTaskEnd(ctx context.Context, execution *model.TaskExecution)
	// RecordCounter adds to a named task-level counter (rows merged,
	// matches found, notifications sent).
	RecordCounter(ctx context.Context, taskName, counter string, delta int64)
	// RecordDuration records a named duration with optional tags.
	RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string)
}

// Tracer starts spans around task executions.
type Tracer interface {
	// StartTaskSpan starts a span for a task execution. The returned
	// function ends the span.
	StartTaskSpan(ctx context.Context, execution *model.TaskExecution) (context.Context, func())
	// RecordError records an error on the current span.
	RecordError(ctx context.Context, component string, err error)
	// RecordEvent records a named event with attributes on the current span.
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
