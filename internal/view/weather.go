package view

import (
	"strings"

	"github.com/tripwind/tripwind/internal/dataset"
)

// WeatherAverages carries the per-key averaged weather metrics. Each metric
// is absent when no observation for the key held a value for it.
type WeatherAverages struct {
	TemperatureAirF             *float64
	RelativeHumidityPct         *float64
	CloudCoverPct               *float64
	PrecipitationProbabilityPct *float64
}

type weatherAccumulator struct {
	temperatureSum   float64
	temperatureCount int
	humiditySum      float64
	humidityCount    int
	cloudSum         float64
	cloudCount       int
	precipSum        float64
	precipCount      int
}

func (a *weatherAccumulator) add(metric *float64, sum *float64, count *int) {
	if metric == nil {
		return
	}
	*sum += *metric
	*count++
}

func (a *weatherAccumulator) observe(w dataset.WeatherObservation) {
	a.add(w.TemperatureAirF, &a.temperatureSum, &a.temperatureCount)
	a.add(w.RelativeHumidityPct, &a.humiditySum, &a.humidityCount)
	a.add(w.CloudCoverPct, &a.cloudSum, &a.cloudCount)
	a.add(w.PrecipitationProbabilityPct, &a.precipSum, &a.precipCount)
}

func (a *weatherAccumulator) averages() WeatherAverages {
	avg := func(sum float64, count int) *float64 {
		if count == 0 {
			return nil
		}
		v := sum / float64(count)
		return &v
	}
	return WeatherAverages{
		TemperatureAirF:             avg(a.temperatureSum, a.temperatureCount),
		RelativeHumidityPct:         avg(a.humiditySum, a.humidityCount),
		CloudCoverPct:               avg(a.cloudSum, a.cloudCount),
		PrecipitationProbabilityPct: avg(a.precipSum, a.precipCount),
	}
}

// WeatherByPostalCode averages each weather metric per postal code for one
// country. Absent metric values are ignored per metric, so a single
// observation never forces a whole postal code out of the view.
func WeatherByPostalCode(observations []dataset.WeatherObservation, country string) map[string]WeatherAverages {
	accs := make(map[string]*weatherAccumulator)
	for _, w := range observations {
		if !strings.EqualFold(w.Country, country) {
			continue
		}
		acc, ok := accs[w.PostalCode]
		if !ok {
			acc = &weatherAccumulator{}
			accs[w.PostalCode] = acc
		}
		acc.observe(w)
	}

	out := make(map[string]WeatherAverages, len(accs))
	for zip, acc := range accs {
		out[zip] = acc.averages()
	}
	return out
}

// CityWeather averages the per-postal-code weather view across all postal
// codes belonging to each of the given cities. Cities without any covered
// postal code are omitted; absent per-zip metrics are skipped per metric.
func CityWeather(cities []string, coverage []dataset.ZipCoverage, byZip map[string]WeatherAverages, country string) map[string]WeatherAverages {
	wanted := make(map[string]string, len(cities))
	for _, city := range cities {
		wanted[strings.ToLower(city)] = city
	}

	accs := make(map[string]*weatherAccumulator)
	for _, zc := range coverage {
		if !strings.EqualFold(zc.Country, country) {
			continue
		}
		city, ok := wanted[strings.ToLower(zc.City)]
		if !ok {
			continue
		}
		zip, ok := byZip[zc.PostalCode]
		if !ok {
			continue
		}
		acc, present := accs[city]
		if !present {
			acc = &weatherAccumulator{}
			accs[city] = acc
		}
		acc.add(zip.TemperatureAirF, &acc.temperatureSum, &acc.temperatureCount)
		acc.add(zip.RelativeHumidityPct, &acc.humiditySum, &acc.humidityCount)
		acc.add(zip.CloudCoverPct, &acc.cloudSum, &acc.cloudCount)
		acc.add(zip.PrecipitationProbabilityPct, &acc.precipSum, &acc.precipCount)
	}

	out := make(map[string]WeatherAverages, len(accs))
	for city, acc := range accs {
		out[city] = acc.averages()
	}
	return out
}
