package metrics

import (
	"go.uber.org/fx"

	coremetrics "github.com/tripwind/tripwind/pkg/pipeline/core/metrics"
)

// Module provides PrometheusRecorder and OpenTelemetryTracer as the
// observability backends of the pipeline core.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewPrometheusRecorder,
		fx.As(new(coremetrics.MetricRecorder)),
	)),
	fx.Provide(fx.Annotate(
		NewOpenTelemetryTracer,
		fx.As(new(coremetrics.Tracer)),
	)),
)
