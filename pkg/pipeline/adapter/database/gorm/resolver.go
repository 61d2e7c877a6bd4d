package gorm

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/fx"

	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
	dbconfig "github.com/tripwind/tripwind/pkg/pipeline/adapter/database/config"
	coreAdapter "github.com/tripwind/tripwind/pkg/pipeline/core/adapter"
	config "github.com/tripwind/tripwind/pkg/pipeline/core/config"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// GormDBConnectionResolver is the GORM implementation of database.DBConnectionResolver.
// It selects the DBProvider for a named connection based on its configured type
// and verifies the connection is alive before handing it out.
type GormDBConnectionResolver struct {
	dbProviders map[string]database.DBProvider
	cfg         *config.Config
}

// ResolverParams collects the dependencies of NewGormDBConnectionResolver.
type ResolverParams struct {
	fx.In
	DBProviders []database.DBProvider `group:"db_providers"`
	Cfg         *config.Config
}

// NewGormDBConnectionResolver creates a new GormDBConnectionResolver.
func NewGormDBConnectionResolver(p ResolverParams) *GormDBConnectionResolver {
	providerMap := make(map[string]database.DBProvider)
	for _, provider := range p.DBProviders {
		providerMap[provider.Type()] = provider
	}

	return &GormDBConnectionResolver{
		dbProviders: providerMap,
		cfg:         p.Cfg,
	}
}

// ResolveDBConnection resolves a database connection with the specified name.
// It attempts to reconnect if the connection is closed or invalid.
func (r *GormDBConnectionResolver) ResolveDBConnection(ctx context.Context, name string) (database.DBConnection, error) {
	rawConfig, ok := r.cfg.Tripwind.AdapterConfigs[name]
	if !ok {
		return nil, fmt.Errorf("database configuration '%s' not found in database configs", name)
	}
	var dbConfig dbconfig.DatabaseConfig
	if err := mapstructure.Decode(rawConfig, &dbConfig); err != nil {
		return nil, fmt.Errorf("failed to decode database config for '%s': %w", name, err)
	}

	provider, ok := r.dbProviders[dbConfig.Type]
	if !ok {
		return nil, fmt.Errorf("DBProvider for type '%s' not found for connection '%s'", dbConfig.Type, name)
	}

	conn, err := provider.GetConnection(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection '%s': %w", name, err)
	}

	sqlDB, getDBErr := conn.GetSQLDB()
	if getDBErr != nil {
		logger.Debugf("Failed to get underlying *sql.DB for connection '%s': %v", name, getDBErr)
		return conn, nil
	}

	if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		logger.Warnf("Connection '%s' is invalid (%v). Attempting to reconnect.", name, pingErr)
		reconnectedConn, reconnectErr := provider.ForceReconnect(name)
		if reconnectErr != nil {
			return nil, fmt.Errorf("failed to reconnect connection '%s': %w", name, reconnectErr)
		}
		logger.Infof("Successfully reconnected connection '%s'.", name)
		return reconnectedConn, nil
	}

	return conn, nil
}

// ResolveConnection implements coreAdapter.ResourceConnectionResolver.
func (r *GormDBConnectionResolver) ResolveConnection(ctx context.Context, name string) (coreAdapter.ResourceConnection, error) {
	return r.ResolveDBConnection(ctx, name)
}
