// Package task implements the two pipeline tasks: the scheduled target
// table update and the downstream notification.
package task

import (
	"context"

	"github.com/tripwind/tripwind/internal/dataset"
	"github.com/tripwind/tripwind/internal/enrichment"
	"github.com/tripwind/tripwind/internal/export"
	"github.com/tripwind/tripwind/internal/store"
	"github.com/tripwind/tripwind/internal/view"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

const componentName = "task"

// UpdateTaskName is the registered name of the target table update task.
const UpdateTaskName = "vacation_spot_update"

// UpdateConfig parameterizes the source views of the update run.
type UpdateConfig struct {
	// Country restricts the weather, demographic, and attraction views.
	Country string `yaml:"country"`
	// MinPopulation is the major-city population threshold.
	MinPopulation int64 `yaml:"min_population"`
	// MinObservedOn is the earliest acceptable population observation
	// date, ISO-8601.
	MinObservedOn string `yaml:"min_observed_on"`
}

// Normalize fills unset fields with the standard view parameters.
func (c UpdateConfig) Normalize() UpdateConfig {
	if c.Country == "" {
		c.Country = "US"
	}
	if c.MinPopulation == 0 {
		c.MinPopulation = 100000
	}
	if c.MinObservedOn == "" {
		c.MinObservedOn = "2020-01-01"
	}
	return c
}

// UpdateTasklet recomputes the harmonized rows from fresh source snapshots
// and merges them into the target store. Each run recomputes every view;
// nothing is cached between runs.
type UpdateTasklet struct {
	loader      dataset.Loader
	airports    *enrichment.AirportIndex
	homeAirport enrichment.HomeAirportSource
	targets     store.TargetStore
	exporter    export.Exporter
	cfg         UpdateConfig
}

// NewUpdateTasklet creates the update task. The exporter may be nil when
// snapshot archival is disabled.
func NewUpdateTasklet(
	loader dataset.Loader,
	airports *enrichment.AirportIndex,
	homeAirport enrichment.HomeAirportSource,
	targets store.TargetStore,
	exporter export.Exporter,
	cfg UpdateConfig,
) *UpdateTasklet {
	return &UpdateTasklet{
		loader:      loader,
		airports:    airports,
		homeAirport: homeAirport,
		targets:     targets,
		exporter:    exporter,
		cfg:         cfg.Normalize(),
	}
}

// Name implements ports.Tasklet.
func (t *UpdateTasklet) Name() string {
	return UpdateTaskName
}

// Execute implements ports.Tasklet.
func (t *UpdateTasklet) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	// The home airport document is re-read on every evaluation.
	home, err := t.homeAirport.Airport(ctx)
	if err != nil {
		return model.ExitStatusFailed, err
	}

	snapshot, err := t.loader.Load(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.New(componentName, "failed to load source snapshots", err, true)
	}
	execution.Counters.Add("flights_read", int64(len(snapshot.Flights)))
	execution.Counters.Add("weather_observations_read", int64(len(snapshot.Weather)))
	execution.Counters.Add("points_of_interest_read", int64(len(snapshot.PointsOfInterest)))

	combined := view.CombinedFlights(snapshot.Flights, t.airports, home)
	major := view.MajorCities(snapshot.Populations, t.cfg.Country, t.cfg.MinPopulation, t.cfg.MinObservedOn)
	cities := view.CityNames(major)
	byZip := view.WeatherByPostalCode(snapshot.Weather, t.cfg.Country)
	cityWeather := view.CityWeather(cities, snapshot.ZipCoverage, byZip, t.cfg.Country)
	attractions := view.Attractions(snapshot.PointsOfInterest, cities, t.cfg.Country)
	rows := view.Harmonize(combined, cityWeather, attractions)

	execution.Counters.Add("destinations_from_home", int64(len(combined)))
	execution.Counters.Add("major_cities", int64(len(major)))
	execution.Counters.Add("rows_harmonized", int64(len(rows)))

	written, err := t.targets.Merge(ctx, rows)
	if err != nil {
		return model.ExitStatusFailed, err
	}
	execution.Counters.Add("rows_merged", written)
	logger.Infof("Merged %d harmonized rows into the target store from airport '%s'", written, home)

	if t.exporter != nil {
		objectName, err := t.exporter.Export(ctx, rows)
		if err != nil {
			return model.ExitStatusFailed, exception.New(componentName, "failed to archive harmonized snapshot", err, true)
		}
		if objectName != "" {
			execution.Counters.Add("snapshots_archived", 1)
		}
	}

	if len(rows) == 0 {
		logger.Warnf("Update run produced no harmonized rows for airport '%s'", home)
		return model.ExitStatusNoOp, nil
	}
	return model.ExitStatusCompleted, nil
}
