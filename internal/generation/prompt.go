package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tripwind/tripwind/internal/domain/entity"
)

// promptRow mirrors the target table columns fed to the model. Absent
// signals serialize as JSON null so the model sees the gap explicitly.
type promptRow struct {
	City                        string   `json:"city"`
	Airport                     string   `json:"airport"`
	CO2EmissionsKgPerPerson     *float64 `json:"co2_emissions_kg_per_person"`
	PunctualPct                 *float64 `json:"punctual_pct"`
	AvgTemperatureAirF          *float64 `json:"avg_temperature_air_f"`
	AvgRelativeHumidityPct      *float64 `json:"avg_relative_humidity_pct"`
	AvgCloudCoverPct            *float64 `json:"avg_cloud_cover_pct"`
	PrecipitationProbabilityPct *float64 `json:"precipitation_probability_pct"`
	AquariumCnt                 *int64   `json:"aquarium_cnt"`
	ZooCnt                      *int64   `json:"zoo_cnt"`
	KoreanRestaurantCnt         *int64   `json:"korean_restaurant_cnt"`
}

const promptTemplate = `You are a travel assistant. The JSON array below lists candidate
vacation destinations with flight, weather, and attraction data.

%s

Using only the destinations above:
1. Pick the single best destination and explain the rationale for the pick.
2. Describe the location.
3. Give packing tips appropriate for the weather data.
4. Propose a 7-day day-by-day plan for the trip.
`

// BuildPrompt renders the fixed report prompt over the given rows.
func BuildPrompt(spots []entity.VacationSpot) (string, error) {
	if len(spots) == 0 {
		return "", fmt.Errorf("cannot build a report prompt without destinations")
	}

	rows := make([]promptRow, len(spots))
	for n, s := range spots {
		rows[n] = promptRow{
			City:                        s.City,
			Airport:                     s.Airport,
			CO2EmissionsKgPerPerson:     s.CO2EmissionsKgPerPerson,
			PunctualPct:                 s.PunctualPct,
			AvgTemperatureAirF:          s.AvgTemperatureAirF,
			AvgRelativeHumidityPct:      s.AvgRelativeHumidityPct,
			AvgCloudCoverPct:            s.AvgCloudCoverPct,
			PrecipitationProbabilityPct: s.PrecipitationProbabilityPct,
			AquariumCnt:                 s.AquariumCnt,
			ZooCnt:                      s.ZooCnt,
			KoreanRestaurantCnt:         s.KoreanRestaurantCnt,
		}
	}

	encoded, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode destinations: %w", err)
	}

	return strings.TrimSpace(fmt.Sprintf(promptTemplate, encoded)), nil
}
