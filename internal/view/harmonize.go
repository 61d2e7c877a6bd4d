package view

import (
	"sort"
	"strings"

	"github.com/tripwind/tripwind/internal/domain/entity"
)

// Harmonize inner-joins the combined flight view with the city weather and
// attraction views on city name. Only cities present in all three inputs
// produce a row, so a destination with flights but no weather coverage is
// excluded entirely rather than emitted half-filled. Within a surviving
// row, individual metrics stay absent when their upstream signal was.
func Harmonize(flights []CombinedFlight, weather map[string]WeatherAverages, attractions map[string]AttractionCounts) []entity.VacationSpot {
	weatherIdx := make(map[string]WeatherAverages, len(weather))
	for city, w := range weather {
		weatherIdx[strings.ToLower(city)] = w
	}
	attractionIdx := make(map[string]AttractionCounts, len(attractions))
	for city, a := range attractions {
		attractionIdx[strings.ToLower(city)] = a
	}

	out := make([]entity.VacationSpot, 0, len(flights))
	for _, f := range flights {
		key := strings.ToLower(f.City)
		w, ok := weatherIdx[key]
		if !ok {
			continue
		}
		a, ok := attractionIdx[key]
		if !ok {
			continue
		}
		aquarium, zoo, korean := a.AquariumCnt, a.ZooCnt, a.KoreanRestaurantCnt
		out = append(out, entity.VacationSpot{
			City:                        f.City,
			Airport:                     f.Airport,
			CO2EmissionsKgPerPerson:     f.CO2KgPerPerson,
			PunctualPct:                 f.PunctualPct,
			AvgTemperatureAirF:          w.TemperatureAirF,
			AvgRelativeHumidityPct:      w.RelativeHumidityPct,
			AvgCloudCoverPct:            w.CloudCoverPct,
			PrecipitationProbabilityPct: w.PrecipitationProbabilityPct,
			AquariumCnt:                 &aquarium,
			ZooCnt:                      &zoo,
			KoreanRestaurantCnt:         &korean,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Airport < out[j].Airport
	})
	return out
}
