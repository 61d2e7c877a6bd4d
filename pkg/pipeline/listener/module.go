package listener

import (
	"go.uber.org/fx"

	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
)

// Module provides the standard task listeners and the completion signaler.
// The signaler is provided both as a listener and as itself so subscribers
// can reach its event channel.
var Module = fx.Options(
	fx.Provide(NewCompletionSignaler),
	fx.Provide(
		fx.Annotate(
			NewLoggingTaskListener,
			fx.As(new(ports.TaskExecutionListener)),
			fx.ResultTags(`group:"`+ports.TaskListenerGroup+`"`),
		),
		fx.Annotate(
			NewMetricsTaskListener,
			fx.As(new(ports.TaskExecutionListener)),
			fx.ResultTags(`group:"`+ports.TaskListenerGroup+`"`),
		),
		fx.Annotate(
			NewTracingTaskListener,
			fx.As(new(ports.TaskExecutionListener)),
			fx.ResultTags(`group:"`+ports.TaskListenerGroup+`"`),
		),
		fx.Annotate(
			func(s *CompletionSignaler) ports.TaskExecutionListener { return s },
			fx.ResultTags(`group:"`+ports.TaskListenerGroup+`"`),
		),
	),
)
