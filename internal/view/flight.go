// Package view implements the read-only transformations of the upstream
// snapshots. Every view is a pure function over immutable inputs,
// re-evaluated on each pipeline run.
package view

import (
	"strings"

	"github.com/tripwind/tripwind/internal/dataset"
	"github.com/tripwind/tripwind/internal/enrichment"
)

// Route identifies a (departure, arrival) airport pair.
type Route struct {
	Departure string
	Arrival   string
}

// timeliness classifications counted as punctual.
const (
	timelinessEarly  = "EARLY"
	timelinessOnTime = "ON_TIME"
)

// EmissionsByRoute averages per-person CO2 (total estimated CO2 divided by
// seat count) per route. Rows with absent CO2, absent seats, or zero seats
// are excluded rather than failing.
func EmissionsByRoute(flights []dataset.FlightRecord) map[Route]float64 {
	sums := make(map[Route]float64)
	counts := make(map[Route]int)

	for _, f := range flights {
		if f.EstimatedCO2Kg == nil || f.Seats == nil || *f.Seats == 0 {
			continue
		}
		route := Route{Departure: normalizeAirport(f.DepartureAirport), Arrival: normalizeAirport(f.ArrivalAirport)}
		sums[route] += *f.EstimatedCO2Kg / float64(*f.Seats)
		counts[route]++
	}

	out := make(map[Route]float64, len(sums))
	for route, sum := range sums {
		out[route] = sum / float64(counts[route])
	}
	return out
}

// PunctualityByRoute computes the percentage (0-100) of flights arriving on
// time or early per route. Rows with an absent timeliness classification
// are excluded from both numerator and denominator.
func PunctualityByRoute(flights []dataset.FlightRecord) map[Route]float64 {
	punctual := make(map[Route]int)
	totals := make(map[Route]int)

	for _, f := range flights {
		if f.ArrivalTimeliness == nil {
			continue
		}
		route := Route{Departure: normalizeAirport(f.DepartureAirport), Arrival: normalizeAirport(f.ArrivalAirport)}
		totals[route]++
		switch strings.ToUpper(*f.ArrivalTimeliness) {
		case timelinessEarly, timelinessOnTime:
			punctual[route]++
		}
	}

	out := make(map[Route]float64, len(totals))
	for route, total := range totals {
		out[route] = float64(punctual[route]) / float64(total) * 100
	}
	return out
}

// CombinedFlight is one route from the home airport with its arrival city
// resolved and both flight signals attached. Either signal may be absent
// when no valid upstream rows exist for the route.
type CombinedFlight struct {
	Airport        string
	City           string
	CO2KgPerPerson *float64
	PunctualPct    *float64
}

// CombinedFlights joins the emissions and punctuality views per route,
// restricted to routes departing from the home airport, and resolves the
// arrival city through the batched lookup. Routes whose arrival airport is
// unknown to the lookup are dropped silently.
func CombinedFlights(flights []dataset.FlightRecord, index *enrichment.AirportIndex, homeAirport string) []CombinedFlight {
	emissions := EmissionsByRoute(flights)
	punctuality := PunctualityByRoute(flights)
	home := normalizeAirport(homeAirport)

	// Collect arrival airports in a stable order for the batched lookup.
	seen := make(map[string]bool)
	var arrivals []string
	for _, f := range flights {
		if normalizeAirport(f.DepartureAirport) != home {
			continue
		}
		arrival := normalizeAirport(f.ArrivalAirport)
		if !seen[arrival] {
			seen[arrival] = true
			arrivals = append(arrivals, arrival)
		}
	}

	cities := index.Cities(arrivals)

	out := make([]CombinedFlight, 0, len(arrivals))
	for n, arrival := range arrivals {
		if cities[n] == nil {
			continue
		}
		route := Route{Departure: home, Arrival: arrival}
		row := CombinedFlight{
			Airport: arrival,
			City:    *cities[n],
		}
		if co2, ok := emissions[route]; ok {
			v := co2
			row.CO2KgPerPerson = &v
		}
		if pct, ok := punctuality[route]; ok {
			v := pct
			row.PunctualPct = &v
		}
		out = append(out, row)
	}
	return out
}

func normalizeAirport(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
