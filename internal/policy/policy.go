// Package policy selects recommendable vacation spots from the target
// table.
package policy

import (
	"github.com/tripwind/tripwind/internal/domain/entity"
)

// Thresholds parameterizes the recommendation predicate. Zero values are
// replaced with the standard policy by Normalize.
type Thresholds struct {
	MinPunctualPct        float64 `yaml:"min_punctual_pct"`
	MinAvgTemperatureAirF float64 `yaml:"min_avg_temperature_air_f"`
	MatchLimit            int     `yaml:"match_limit"`
}

// DefaultThresholds returns the standard recommendation policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinPunctualPct:        50,
		MinAvgTemperatureAirF: 70,
		MatchLimit:            10,
	}
}

// Normalize fills unset fields from the standard policy.
func (t Thresholds) Normalize() Thresholds {
	def := DefaultThresholds()
	if t.MinPunctualPct == 0 {
		t.MinPunctualPct = def.MinPunctualPct
	}
	if t.MinAvgTemperatureAirF == 0 {
		t.MinAvgTemperatureAirF = def.MinAvgTemperatureAirF
	}
	if t.MatchLimit <= 0 {
		t.MatchLimit = def.MatchLimit
	}
	return t
}

// Matches reports whether one spot satisfies the recommendation predicate:
// punctual enough flights, warm enough weather, at least one Korean
// restaurant, and an aquarium or a zoo. Absent signals never match their
// clause.
func (t Thresholds) Matches(s entity.VacationSpot) bool {
	if s.PunctualPct == nil || *s.PunctualPct < t.MinPunctualPct {
		return false
	}
	if s.AvgTemperatureAirF == nil || *s.AvgTemperatureAirF < t.MinAvgTemperatureAirF {
		return false
	}
	if s.KoreanRestaurantCnt == nil || *s.KoreanRestaurantCnt <= 0 {
		return false
	}
	hasAquarium := s.AquariumCnt != nil && *s.AquariumCnt > 0
	hasZoo := s.ZooCnt != nil && *s.ZooCnt > 0
	return hasAquarium || hasZoo
}

// Filter returns the qualifying spots in input order, capped at the match
// limit.
func (t Thresholds) Filter(spots []entity.VacationSpot) []entity.VacationSpot {
	var out []entity.VacationSpot
	for _, s := range spots {
		if !t.Matches(s) {
			continue
		}
		out = append(out, s)
		if len(out) == t.MatchLimit {
			break
		}
	}
	return out
}
