// Package entity defines the persisted domain records of the vacation pipeline.
package entity

// VacationSpot is one harmonized recommendation row, keyed by the
// (city, airport) pair. Signal columns are pointers because each signal is
// independently nullable when upstream data is absent for the key.
type VacationSpot struct {
	City    string `gorm:"column:city;primaryKey"`
	Airport string `gorm:"column:airport;primaryKey"`

	CO2EmissionsKgPerPerson     *float64 `gorm:"column:co2_emissions_kg_per_person"`
	PunctualPct                 *float64 `gorm:"column:punctual_pct"`
	AvgTemperatureAirF          *float64 `gorm:"column:avg_temperature_air_f"`
	AvgRelativeHumidityPct      *float64 `gorm:"column:avg_relative_humidity_pct"`
	AvgCloudCoverPct            *float64 `gorm:"column:avg_cloud_cover_pct"`
	PrecipitationProbabilityPct *float64 `gorm:"column:precipitation_probability_pct"`

	AquariumCnt         *int64 `gorm:"column:aquarium_cnt"`
	ZooCnt              *int64 `gorm:"column:zoo_cnt"`
	KoreanRestaurantCnt *int64 `gorm:"column:korean_restaurant_cnt"`
}

// TableName implements the gorm table name convention.
func (VacationSpot) TableName() string {
	return "vacation_spots"
}

// Key identifies a VacationSpot.
type Key struct {
	City    string
	Airport string
}

// Key returns the identity key of the row.
func (s *VacationSpot) Key() Key {
	return Key{City: s.City, Airport: s.Airport}
}

// ConflictColumns returns the key columns used by the upsert.
func ConflictColumns() []string {
	return []string{"city", "airport"}
}

// UpdateColumns returns the non-key columns replaced on every merge.
func UpdateColumns() []string {
	return []string{
		"co2_emissions_kg_per_person",
		"punctual_pct",
		"avg_temperature_air_f",
		"avg_relative_humidity_pct",
		"avg_cloud_cover_pct",
		"precipitation_probability_pct",
		"aquarium_cnt",
		"zoo_cnt",
		"korean_restaurant_cnt",
	}
}
