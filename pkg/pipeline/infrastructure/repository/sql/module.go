package sql

import (
	"go.uber.org/fx"

	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
	"github.com/tripwind/tripwind/pkg/pipeline/core/config"
	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
)

// Module provides SQLTaskExecutionRepository as a
// repository.TaskExecutionRepository, bound to the connection named in
// the infrastructure configuration.
var Module = fx.Options(
	fx.Provide(
		func(dbResolver database.DBConnectionResolver, cfg *config.Config) repository.TaskExecutionRepository {
			return NewSQLTaskExecutionRepository(dbResolver, cfg.Tripwind.Infrastructure.TaskRepositoryDBRef)
		},
	),
)
