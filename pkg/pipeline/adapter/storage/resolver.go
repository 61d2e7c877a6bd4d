package storage

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	coreAdapter "github.com/tripwind/tripwind/pkg/pipeline/core/adapter"
	coreConfig "github.com/tripwind/tripwind/pkg/pipeline/core/config"
	"github.com/tripwind/tripwind/pkg/pipeline/support/configbinder"
)

// TypedConnectionResolver resolves storage connections by looking up the
// backend type for the named connection in configuration and delegating to
// the matching StorageProvider.
type TypedConnectionResolver struct {
	providers map[string]StorageProvider
	cfg       *coreConfig.Config
}

// ResolverParams collects the dependencies of NewTypedConnectionResolver.
type ResolverParams struct {
	fx.In
	Providers []StorageProvider `group:"storage_providers"`
	Cfg       *coreConfig.Config
}

// NewTypedConnectionResolver creates a new TypedConnectionResolver.
func NewTypedConnectionResolver(p ResolverParams) *TypedConnectionResolver {
	providerMap := make(map[string]StorageProvider)
	for _, provider := range p.Providers {
		providerMap[provider.Type()] = provider
	}
	return &TypedConnectionResolver{
		providers: providerMap,
		cfg:       p.Cfg,
	}
}

// ResolveStorageConnection resolves a StorageConnection instance by name.
func (r *TypedConnectionResolver) ResolveStorageConnection(ctx context.Context, name string) (StorageConnection, error) {
	rawConfig, ok := r.cfg.Tripwind.StorageConfigs[name]
	if !ok {
		return nil, fmt.Errorf("storage connection '%s' not found in configuration", name)
	}
	configMap, ok := rawConfig.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid storage configuration format for '%s': expected a mapping", name)
	}

	var typed struct {
		Type string `yaml:"type"`
	}
	if err := configbinder.BindProperties(configMap, &typed); err != nil {
		return nil, fmt.Errorf("failed to decode storage type for '%s': %w", name, err)
	}

	provider, ok := r.providers[typed.Type]
	if !ok {
		return nil, fmt.Errorf("no storage provider found for type '%s' (connection '%s')", typed.Type, name)
	}

	conn, err := provider.GetConnection(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage connection '%s' from provider '%s': %w", name, typed.Type, err)
	}
	return conn, nil
}

// ResolveConnection implements coreAdapter.ResourceConnectionResolver.
func (r *TypedConnectionResolver) ResolveConnection(ctx context.Context, name string) (coreAdapter.ResourceConnection, error) {
	return r.ResolveStorageConnection(ctx, name)
}

// Module exports the storage connection resolver for dependency injection.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewTypedConnectionResolver,
		fx.As(new(StorageConnectionResolver)),
	)),
)
