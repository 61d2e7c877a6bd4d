package view

import (
	"sort"
	"strings"

	"github.com/tripwind/tripwind/internal/dataset"
)

// MajorCity is one qualifying city with its most recent population figure.
type MajorCity struct {
	City       string
	Population int64
}

// MajorCities selects cities of one country whose most recent population
// observation at or after minObservedOn exceeds minPopulation, ranked by
// population descending. Observation dates are ISO-8601 date strings, so
// lexical comparison orders them chronologically.
func MajorCities(populations []dataset.CityPopulation, country string, minPopulation int64, minObservedOn string) []MajorCity {
	latest := make(map[string]dataset.CityPopulation)
	for _, p := range populations {
		if !strings.EqualFold(p.Country, country) {
			continue
		}
		if p.ObservedOn < minObservedOn {
			continue
		}
		cur, ok := latest[p.City]
		if !ok || p.ObservedOn > cur.ObservedOn {
			latest[p.City] = p
		}
	}

	out := make([]MajorCity, 0, len(latest))
	for _, p := range latest {
		if p.Population <= minPopulation {
			continue
		}
		out = append(out, MajorCity{City: p.City, Population: p.Population})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Population != out[j].Population {
			return out[i].Population > out[j].Population
		}
		return out[i].City < out[j].City
	})
	return out
}

// CityNames projects the ranked major-city view to its names.
func CityNames(cities []MajorCity) []string {
	names := make([]string, len(cities))
	for n, c := range cities {
		names[n] = c.City
	}
	return names
}
