// Package memstore keeps the target table in process memory. It backs
// tests and local runs that do not configure a database.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/tripwind/tripwind/internal/domain/entity"
)

// MemoryTargetStore is a mutex-guarded map keyed by (city, airport).
type MemoryTargetStore struct {
	mu    sync.RWMutex
	spots map[entity.Key]entity.VacationSpot
}

// NewMemoryTargetStore creates an empty store.
func NewMemoryTargetStore() *MemoryTargetStore {
	return &MemoryTargetStore{spots: make(map[entity.Key]entity.VacationSpot)}
}

// Merge applies the batch under the write lock. Existing keys have every
// signal column replaced; keys missing from the batch are left alone.
func (s *MemoryTargetStore) Merge(_ context.Context, spots []entity.VacationSpot) (int64, error) {
	if len(spots) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spot := range spots {
		s.spots[spot.Key()] = spot
	}
	return int64(len(spots)), nil
}

// List returns a sorted copy of the stored rows.
func (s *MemoryTargetStore) List(_ context.Context) ([]entity.VacationSpot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.VacationSpot, 0, len(s.spots))
	for _, spot := range s.spots {
		out = append(out, spot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Airport < out[j].Airport
	})
	return out, nil
}

// Count returns the number of stored rows.
func (s *MemoryTargetStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.spots)), nil
}
