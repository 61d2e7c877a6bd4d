package gorm

import (
	"go.uber.org/fx"

	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
)

// Module exports the components of the gorm adapter package for dependency
// injection (excluding the concrete DB providers).
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewGormDBConnectionResolver,
		fx.As(new(database.DBConnectionResolver)),
	)),
)
