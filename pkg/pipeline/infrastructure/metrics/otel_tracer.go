package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	coremetrics "github.com/tripwind/tripwind/pkg/pipeline/core/metrics"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

const tracerName = "github.com/tripwind/tripwind/pkg/pipeline"

// OpenTelemetryTracer is an implementation of metrics.Tracer using OpenTelemetry.
// Span export is left to the deployment; without a configured exporter the
// spans are recorded in process only.
type OpenTelemetryTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewOpenTelemetryTracer creates a new OpenTelemetryTracer with its own
// tracer provider.
func NewOpenTelemetryTracer() *OpenTelemetryTracer {
	provider := sdktrace.NewTracerProvider()
	return &OpenTelemetryTracer{
		provider: provider,
		tracer:   provider.Tracer(tracerName),
	}
}

// StartTaskSpan starts a new span for a TaskExecution.
func (t *OpenTelemetryTracer) StartTaskSpan(ctx context.Context, execution *model.TaskExecution) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, execution.TaskName,
		trace.WithAttributes(
			attribute.String("task.id", execution.ID),
			attribute.String("task.trigger", string(execution.Trigger)),
		),
	)
	return ctx, func() {
		span.SetAttributes(
			attribute.String("task.status", execution.Status.String()),
			attribute.String("task.exit_status", execution.ExitStatus.String()),
		)
		if execution.Status == model.TaskStatusFailed {
			span.SetStatus(codes.Error, execution.ExitStatus.String())
		}
		span.End()
	}
}

// RecordError records an error on the current span.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, component string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attribute.String("component", component)))
}

// RecordEvent records a named event with attributes on the current span.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Shutdown flushes and stops the underlying tracer provider.
func (t *OpenTelemetryTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

var _ coremetrics.Tracer = (*OpenTelemetryTracer)(nil)
