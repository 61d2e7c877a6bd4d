// Package store persists the harmonized vacation-spot target table.
package store

import (
	"context"

	"github.com/tripwind/tripwind/internal/domain/entity"
)

// TargetStore maintains the (city, airport)-keyed target table. Merge
// inserts new keys and fully replaces the signal columns of existing ones.
// Keys absent from a merge batch are never deleted.
type TargetStore interface {
	// Merge applies the batch atomically and returns the number of rows
	// written. An empty batch is a no-op.
	Merge(ctx context.Context, spots []entity.VacationSpot) (int64, error)

	// List returns all rows ordered by city then airport.
	List(ctx context.Context) ([]entity.VacationSpot, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context) (int64, error)
}
