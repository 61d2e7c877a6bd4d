package policy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/internal/domain/entity"
)

func fp(v float64) *float64 { return &v }
func ip(v int64) *int64     { return &v }

func spot(punctual, temp *float64, korean, aquarium, zoo *int64) entity.VacationSpot {
	return entity.VacationSpot{
		PunctualPct:         punctual,
		AvgTemperatureAirF:  temp,
		KoreanRestaurantCnt: korean,
		AquariumCnt:         aquarium,
		ZooCnt:              zoo,
	}
}

func TestThresholds_Matches(t *testing.T) {
	p := DefaultThresholds()

	tests := []struct {
		name string
		spot entity.VacationSpot
		want bool
	}{
		{"all clauses met via zoo", spot(fp(80), fp(75), ip(2), nil, ip(1)), true},
		{"all clauses met via aquarium", spot(fp(80), fp(75), ip(2), ip(1), ip(0)), true},
		{"punctuality exactly at threshold", spot(fp(50), fp(71), ip(1), nil, ip(1)), true},
		{"punctuality below threshold", spot(fp(49), fp(71), ip(1), nil, ip(1)), false},
		{"temperature below threshold", spot(fp(70), fp(60), ip(1), nil, ip(1)), false},
		{"no korean restaurants", spot(fp(80), fp(75), ip(0), ip(1), ip(1)), false},
		{"neither aquarium nor zoo", spot(fp(80), fp(75), ip(2), ip(0), ip(0)), false},
		{"absent punctuality never matches", spot(nil, fp(75), ip(2), nil, ip(1)), false},
		{"absent temperature never matches", spot(fp(80), nil, ip(2), nil, ip(1)), false},
		{"absent amenity counts never match", spot(fp(80), fp(75), nil, nil, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Matches(tt.spot))
		})
	}
}

// The three-row example: only the (50, 71) row qualifies.
func TestThresholds_FilterExample(t *testing.T) {
	p := DefaultThresholds()
	spots := []entity.VacationSpot{
		spot(fp(49), fp(71), ip(1), nil, ip(1)),
		spot(fp(50), fp(71), ip(1), nil, ip(1)),
		spot(fp(70), fp(60), ip(1), nil, ip(1)),
	}

	got := p.Filter(spots)

	require.Len(t, got, 1)
	assert.Equal(t, fp(50), got[0].PunctualPct)
}

func TestThresholds_FilterLimit(t *testing.T) {
	p := DefaultThresholds()
	var spots []entity.VacationSpot
	for n := 0; n < 15; n++ {
		s := spot(fp(90), fp(80), ip(1), ip(1), nil)
		s.City = fmt.Sprintf("City %02d", n)
		spots = append(spots, s)
	}

	got := p.Filter(spots)

	require.Len(t, got, 10)
	// Input order is preserved up to the cap.
	assert.Equal(t, "City 00", got[0].City)
	assert.Equal(t, "City 09", got[9].City)
}

func TestThresholds_FilterEmpty(t *testing.T) {
	assert.Empty(t, DefaultThresholds().Filter(nil))
}

func TestThresholds_Normalize(t *testing.T) {
	got := Thresholds{}.Normalize()
	assert.Equal(t, DefaultThresholds(), got)

	custom := Thresholds{MinPunctualPct: 60, MinAvgTemperatureAirF: 65, MatchLimit: 5}.Normalize()
	assert.Equal(t, 5, custom.MatchLimit)
	assert.Equal(t, 60.0, custom.MinPunctualPct)
}
