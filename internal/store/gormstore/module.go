package gormstore

import (
	"go.uber.org/fx"

	"github.com/tripwind/tripwind/internal/store"
	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
	coreconfig "github.com/tripwind/tripwind/pkg/pipeline/core/config"
)

// Module provides the database-backed target store.
var Module = fx.Options(
	fx.Provide(
		func(resolver database.DBConnectionResolver, cfg *coreconfig.Config) store.TargetStore {
			return NewGormTargetStore(resolver, cfg.Tripwind.Infrastructure.TargetStoreDBRef)
		},
	),
)
