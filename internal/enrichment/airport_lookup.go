// Package enrichment resolves airport identifiers to city names using a
// static fixed-width reference file.
package enrichment

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

const componentName = "enrichment"

// Layout describes the fixed column positions of the reference file.
// Each line carries a 3-letter location identifier and a city name.
type Layout struct {
	CodeStart int `yaml:"code_start"`
	CodeEnd   int `yaml:"code_end"`
	CityStart int `yaml:"city_start"`
	CityEnd   int `yaml:"city_end"`
}

// DefaultLayout matches the published airport reference format.
func DefaultLayout() Layout {
	return Layout{CodeStart: 0, CodeEnd: 3, CityStart: 13, CityEnd: 43}
}

// AirportIndex answers batched airport-to-city lookups. The index is
// immutable after construction and safe for concurrent use.
type AirportIndex struct {
	cities map[string]string
}

// NewAirportIndex parses the reference file. Malformed reference data is a
// fatal construction error, not a per-row condition.
func NewAirportIndex(path string, layout Layout) (*AirportIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("failed to open airport reference '%s'", path), err, false)
	}
	defer f.Close()

	index, err := parseReference(f, layout)
	if err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("malformed airport reference '%s'", path), err, false)
	}

	logger.Infof("Loaded %d airport records from '%s'", len(index.cities), path)
	return index, nil
}

// NewAirportIndexFromMap builds an index directly from code-to-city pairs.
// Codes are normalized to upper case.
func NewAirportIndexFromMap(cities map[string]string) *AirportIndex {
	normalized := make(map[string]string, len(cities))
	for code, city := range cities {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = city
	}
	return &AirportIndex{cities: normalized}
}

func parseReference(r io.Reader, layout Layout) (*AirportIndex, error) {
	if layout.CodeEnd <= layout.CodeStart || layout.CityEnd <= layout.CityStart {
		return nil, fmt.Errorf("invalid reference layout: %+v", layout)
	}

	cities := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < layout.CityEnd {
			return nil, fmt.Errorf("line %d is shorter than the reference layout (%d < %d)", lineNo, len(line), layout.CityEnd)
		}

		code := strings.ToUpper(strings.TrimSpace(line[layout.CodeStart:layout.CodeEnd]))
		city := strings.TrimSpace(line[layout.CityStart:layout.CityEnd])
		if len(code) != 3 {
			return nil, fmt.Errorf("line %d has an invalid location identifier %q", lineNo, code)
		}
		if city == "" {
			return nil, fmt.Errorf("line %d has an empty city name for code %q", lineNo, code)
		}
		cities[code] = city
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &AirportIndex{cities: cities}, nil
}

// Cities resolves an ordered batch of airport codes to city names. The
// result has the same length as the input; an unknown code yields a nil
// entry, never an error. Lookup is case-insensitive.
func (i *AirportIndex) Cities(codes []string) []*string {
	out := make([]*string, len(codes))
	for n, code := range codes {
		if city, ok := i.cities[strings.ToUpper(strings.TrimSpace(code))]; ok {
			c := city
			out[n] = &c
		}
	}
	return out
}

// City resolves a single airport code. It is a convenience wrapper over
// the batched lookup.
func (i *AirportIndex) City(code string) *string {
	return i.Cities([]string{code})[0]
}

// Len returns the number of indexed airports.
func (i *AirportIndex) Len() int {
	return len(i.cities)
}
