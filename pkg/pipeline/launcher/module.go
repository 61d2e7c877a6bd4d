package launcher

import "go.uber.org/fx"

// Module provides the task launcher.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewSimpleTaskLauncher,
		fx.As(new(TaskLauncher)),
	)),
)
