package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/internal/domain/entity"
	"github.com/tripwind/tripwind/internal/store"
)

func fp(v float64) *float64 { return &v }
func ip(v int64) *int64     { return &v }

func spot(city, airport string, temp *float64) entity.VacationSpot {
	return entity.VacationSpot{
		City:               city,
		Airport:            airport,
		AvgTemperatureAirF: temp,
		KoreanRestaurantCnt: ip(1),
	}
}

func TestMemoryTargetStore_MergeInsertsAndReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTargetStore()

	written, err := s.Merge(ctx, []entity.VacationSpot{spot("Seattle", "SEA", fp(70))})
	require.NoError(t, err)
	assert.Equal(t, int64(1), written)

	// A later merge for the same key replaces every signal column,
	// including replacing a present value with an absent one.
	_, err = s.Merge(ctx, []entity.VacationSpot{spot("Seattle", "SEA", nil)})
	require.NoError(t, err)

	spots, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Nil(t, spots[0].AvgTemperatureAirF)
}

func TestMemoryTargetStore_MergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTargetStore()
	batch := []entity.VacationSpot{
		spot("Seattle", "SEA", fp(70)),
		spot("New York", "JFK", fp(75)),
	}

	_, err := s.Merge(ctx, batch)
	require.NoError(t, err)
	first, err := s.List(ctx)
	require.NoError(t, err)

	_, err = s.Merge(ctx, batch)
	require.NoError(t, err)
	second, err := s.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMemoryTargetStore_MergeNeverDeletes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTargetStore()

	_, err := s.Merge(ctx, []entity.VacationSpot{spot("Seattle", "SEA", fp(70))})
	require.NoError(t, err)

	// A batch without the previous key leaves it in place.
	_, err = s.Merge(ctx, []entity.VacationSpot{spot("New York", "JFK", fp(75))})
	require.NoError(t, err)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMemoryTargetStore_OneRowPerKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTargetStore()

	// Same city through two airports stays two distinct rows.
	_, err := s.Merge(ctx, []entity.VacationSpot{
		spot("New York", "JFK", fp(75)),
		spot("New York", "LGA", fp(74)),
		spot("New York", "JFK", fp(76)),
	})
	require.NoError(t, err)

	spots, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, spots, 2)
	assert.Equal(t, "JFK", spots[0].Airport)
	assert.Equal(t, "LGA", spots[1].Airport)
	assert.Equal(t, fp(76), spots[0].AvgTemperatureAirF)
}

func TestMemoryTargetStore_EmptyBatchIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTargetStore()

	written, err := s.Merge(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestMemoryTargetStore_ImplementsTargetStore(t *testing.T) {
	var _ store.TargetStore = NewMemoryTargetStore()
}
