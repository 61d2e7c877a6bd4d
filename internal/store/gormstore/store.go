// Package gormstore backs the target table with a relational database
// resolved through the pipeline's connection layer.
package gormstore

import (
	"context"

	"github.com/tripwind/tripwind/internal/domain/entity"
	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
)

const componentName = "target_store"

// GormTargetStore writes vacation spots through a resolved database
// connection. The batch upsert runs as a single statement, so a merge is
// applied entirely or not at all.
type GormTargetStore struct {
	resolver database.DBConnectionResolver
	dbName   string
}

// NewGormTargetStore creates a store bound to the named connection.
func NewGormTargetStore(resolver database.DBConnectionResolver, dbName string) *GormTargetStore {
	return &GormTargetStore{resolver: resolver, dbName: dbName}
}

func (s *GormTargetStore) connection(ctx context.Context) (database.DBConnection, error) {
	conn, err := s.resolver.ResolveDBConnection(ctx, s.dbName)
	if err != nil {
		return nil, exception.New(componentName, "failed to resolve target store connection", err, true)
	}
	return conn, nil
}

// Merge upserts the batch keyed by (city, airport), replacing every signal
// column of existing rows. Rows not present in the batch stay untouched.
func (s *GormTargetStore) Merge(ctx context.Context, spots []entity.VacationSpot) (int64, error) {
	if len(spots) == 0 {
		return 0, nil
	}
	conn, err := s.connection(ctx)
	if err != nil {
		return 0, err
	}

	affected, err := conn.ExecuteUpsert(ctx, &spots, entity.VacationSpot{}.TableName(), entity.ConflictColumns(), entity.UpdateColumns())
	if err != nil {
		return 0, exception.New(componentName, "failed to merge vacation spots", err, true)
	}
	return affected, nil
}

// List returns the stored rows in key order.
func (s *GormTargetStore) List(ctx context.Context) ([]entity.VacationSpot, error) {
	conn, err := s.connection(ctx)
	if err != nil {
		return nil, err
	}

	var spots []entity.VacationSpot
	if err := conn.ExecuteQueryAdvanced(ctx, &spots, map[string]interface{}{}, "city ASC, airport ASC", 0); err != nil {
		if conn.IsTableNotExistError(err) {
			return nil, nil
		}
		return nil, exception.New(componentName, "failed to list vacation spots", err, true)
	}
	return spots, nil
}

// Count returns the number of stored rows.
func (s *GormTargetStore) Count(ctx context.Context) (int64, error) {
	conn, err := s.connection(ctx)
	if err != nil {
		return 0, err
	}

	count, err := conn.Count(ctx, &entity.VacationSpot{}, map[string]interface{}{})
	if err != nil {
		if conn.IsTableNotExistError(err) {
			return 0, nil
		}
		return 0, exception.New(componentName, "failed to count vacation spots", err, true)
	}
	return count, nil
}
