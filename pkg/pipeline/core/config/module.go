package config

import "go.uber.org/fx"

// Module provides the configuration components.
var Module = fx.Options(
	fx.Provide(NewConfigProvider),
)
