package view

import (
	"strings"

	"github.com/tripwind/tripwind/internal/dataset"
)

// point-of-interest categories of interest to the target table.
const (
	categoryAquarium         = "aquarium"
	categoryZoo              = "zoo"
	categoryKoreanRestaurant = "korean restaurant"
)

// AttractionCounts tallies the relevant point-of-interest categories for
// one city.
type AttractionCounts struct {
	AquariumCnt         int64
	ZooCnt              int64
	KoreanRestaurantCnt int64
}

// Attractions counts aquariums, zoos, and Korean restaurants per city for
// one country, restricted to the given cities. Cities with no matching
// points of interest are still present with zero counts so downstream
// joins distinguish "no attractions" from "city not covered".
func Attractions(pois []dataset.PointOfInterest, cities []string, country string) map[string]AttractionCounts {
	out := make(map[string]AttractionCounts, len(cities))
	index := make(map[string]string, len(cities))
	for _, city := range cities {
		out[city] = AttractionCounts{}
		index[strings.ToLower(city)] = city
	}

	for _, poi := range pois {
		if !strings.EqualFold(poi.Country, country) {
			continue
		}
		city, ok := index[strings.ToLower(poi.City)]
		if !ok {
			continue
		}
		counts := out[city]
		switch strings.ToLower(poi.Category) {
		case categoryAquarium:
			counts.AquariumCnt++
		case categoryZoo:
			counts.ZooCnt++
		case categoryKoreanRestaurant:
			counts.KoreanRestaurantCnt++
		default:
			continue
		}
		out[city] = counts
	}
	return out
}
