package inmemory

import (
	"go.uber.org/fx"

	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
)

// Module provides InMemoryTaskExecutionRepository as a
// repository.TaskExecutionRepository.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			NewInMemoryTaskExecutionRepository,
			fx.As(new(repository.TaskExecutionRepository)),
		),
	),
)
