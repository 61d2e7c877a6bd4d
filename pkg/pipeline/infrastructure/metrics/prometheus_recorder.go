// Package metrics provides concrete observability backends for the
// pipeline core ports.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	coremetrics "github.com/tripwind/tripwind/pkg/pipeline/core/metrics"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// PrometheusRecorder is a Prometheus implementation of the
// metrics.MetricRecorder interface.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	taskDurationSeconds *prometheus.HistogramVec
	taskStatusCounter   *prometheus.CounterVec
	taskCounters        *prometheus.CounterVec
	namedDurations      *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		taskDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_task_duration_seconds",
			Help:    "Duration of pipeline task executions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"task_name", "status", "exit_status"}),
		taskStatusCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_task_status_total",
			Help: "Total number of pipeline task executions by status.",
		}, []string{"task_name", "status"}),
		taskCounters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_task_counter_total",
			Help: "Task-level counters (rows merged, matches found, notifications sent).",
		}, []string{"task_name", "counter"}),
		namedDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_operation_duration_seconds",
			Help:    "Duration of named pipeline operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registry.MustRegister(r.taskDurationSeconds)
	registry.MustRegister(r.taskStatusCounter)
	registry.MustRegister(r.taskCounters)
	registry.MustRegister(r.namedDurations)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordTaskStart records the start of a TaskExecution.
func (r *PrometheusRecorder) RecordTaskStart(ctx context.Context, execution *model.TaskExecution) {
	r.taskStatusCounter.WithLabelValues(execution.TaskName, execution.Status.String()).Inc()
	logger.Debugf("Metrics: Task '%s' started.", execution.TaskName)
}

// RecordTaskEnd records a finished TaskExecution with its terminal status.
func (r *PrometheusRecorder) RecordTaskEnd(ctx context.Context, execution *model.TaskExecution) {
	r.taskStatusCounter.WithLabelValues(execution.TaskName, execution.Status.String()).Inc()
	r.taskDurationSeconds.WithLabelValues(
		execution.TaskName,
		execution.Status.String(),
		execution.ExitStatus.String(),
	).Observe(execution.Duration().Seconds())
	logger.Debugf("Metrics: Task '%s' finished with status '%s'.", execution.TaskName, execution.Status)
}

// RecordCounter adds to a named task-level counter.
func (r *PrometheusRecorder) RecordCounter(ctx context.Context, taskName, counter string, delta int64) {
	if delta <= 0 {
		return
	}
	r.taskCounters.WithLabelValues(taskName, counter).Add(float64(delta))
}

// RecordDuration records a named duration. Tags are ignored by the
// Prometheus backend to keep label cardinality bounded.
func (r *PrometheusRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
	r.namedDurations.WithLabelValues(name).Observe(duration.Seconds())
}

var _ coremetrics.MetricRecorder = (*PrometheusRecorder)(nil)
