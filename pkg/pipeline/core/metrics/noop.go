package metrics

import (
	"context"
	"time"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

// NoOpMetricRecorder is a MetricRecorder that does nothing. It is used when
// metrics are disabled and in tests.
type NoOpMetricRecorder struct{}

// NewNoOpMetricRecorder creates a new NoOpMetricRecorder.
func NewNoOpMetricRecorder() MetricRecorder {
	return &NoOpMetricRecorder{}
}

func (r *NoOpMetricRecorder) RecordTaskStart(ctx context.Context, execution *model.TaskExecution) {}
func (r *NoOpMetricRecorder) RecordTaskEnd(ctx context.Context, execution *model.TaskExecution)   {}
func (r *NoOpMetricRecorder) RecordCounter(ctx context.Context, taskName, counter string, delta int64) {
}
func (r *NoOpMetricRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
}

var _ MetricRecorder = (*NoOpMetricRecorder)(nil)

// NoOpTracer is a Tracer that does nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

func (t *NoOpTracer) StartTaskSpan(ctx context.Context, execution *model.TaskExecution) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoOpTracer) RecordError(ctx context.Context, component string, err error) {}

func (t *NoOpTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

var _ Tracer = (*NoOpTracer)(nil)
