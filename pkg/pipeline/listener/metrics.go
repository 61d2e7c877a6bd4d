package listener

import (
	"context"

	"github.com/tripwind/tripwind/pkg/pipeline/core/metrics"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
)

// MetricsTaskListener forwards task lifecycle events to the MetricRecorder.
type MetricsTaskListener struct {
	recorder metrics.MetricRecorder
}

// NewMetricsTaskListener creates a new MetricsTaskListener.
func NewMetricsTaskListener(recorder metrics.MetricRecorder) *MetricsTaskListener {
	return &MetricsTaskListener{recorder: recorder}
}

func (l *MetricsTaskListener) BeforeTask(ctx context.Context, execution *model.TaskExecution) {
	l.recorder.RecordTaskStart(ctx, execution)
}

func (l *MetricsTaskListener) AfterTask(ctx context.Context, execution *model.TaskExecution) {
	l.recorder.RecordTaskEnd(ctx, execution)
	for counter, value := range execution.Counters {
		l.recorder.RecordCounter(ctx, execution.TaskName, counter, value)
	}
}

var _ ports.TaskExecutionListener = (*MetricsTaskListener)(nil)
