// Package dataset defines the upstream data snapshots consumed by the
// pipeline. Each snapshot is an immutable in-memory copy of one upstream
// feed, loaded from Parquet files once per run.
package dataset

// FlightRecord is one observed flight between two airports.
type FlightRecord struct {
	DepartureAirport string   `parquet:"name=departure_airport, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ArrivalAirport   string   `parquet:"name=arrival_airport, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	// EstimatedCO2Kg is the total estimated CO2 for the flight in kilograms.
	EstimatedCO2Kg *float64 `parquet:"name=estimated_co2_kg, type=DOUBLE, repetitiontype=OPTIONAL"`
	Seats          *int64   `parquet:"name=seats, type=INT64, repetitiontype=OPTIONAL"`
	// ArrivalTimeliness classifies the arrival ("EARLY", "ON_TIME", "LATE").
	// Absent when the upstream feed has no classification for the flight.
	ArrivalTimeliness *string `parquet:"name=arrival_timeliness, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// WeatherObservation is one hourly forecast observation for a postal code.
type WeatherObservation struct {
	PostalCode string `parquet:"name=postal_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Country    string `parquet:"name=country, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`

	TemperatureAirF             *float64 `parquet:"name=temperature_air_f, type=DOUBLE, repetitiontype=OPTIONAL"`
	RelativeHumidityPct         *float64 `parquet:"name=relative_humidity_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	CloudCoverPct               *float64 `parquet:"name=cloud_cover_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	PrecipitationProbabilityPct *float64 `parquet:"name=precipitation_probability_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// CityPopulation is one population observation for a city.
// ObservedOn is an ISO-8601 date (YYYY-MM-DD); ISO dates order correctly
// as strings, which the views rely on.
type CityPopulation struct {
	City       string `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Country    string `parquet:"name=country, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Population int64  `parquet:"name=population, type=INT64"`
	ObservedOn string `parquet:"name=observed_on, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ZipCoverage maps a postal code to the city containing it.
type ZipCoverage struct {
	City       string `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Country    string `parquet:"name=country, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	PostalCode string `parquet:"name=postal_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// PointOfInterest is one amenity record.
type PointOfInterest struct {
	Name     string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category string `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	City     string `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Country  string `parquet:"name=country, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// Snapshot bundles all upstream feeds for a single pipeline run.
type Snapshot struct {
	Flights          []FlightRecord
	Weather          []WeatherObservation
	Populations      []CityPopulation
	ZipCoverage      []ZipCoverage
	PointsOfInterest []PointOfInterest
}
