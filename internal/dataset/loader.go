package dataset

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"

	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

const componentName = "dataset"

// readBatchSize bounds memory per read call when scanning large feeds.
const readBatchSize = 1024

// Paths names the Parquet file for each upstream feed.
type Paths struct {
	Flights          string `yaml:"flights"`
	Weather          string `yaml:"weather"`
	Populations      string `yaml:"populations"`
	ZipCoverage      string `yaml:"zip_coverage"`
	PointsOfInterest string `yaml:"points_of_interest"`
}

// readParquet reads every row of a Parquet file into a slice of T.
func readParquet[T any](path string) ([]T, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("failed to open parquet file '%s'", path), err, false)
	}
	defer func(fr source.ParquetFile) { _ = fr.Close() }(fr)

	pr, err := reader.NewParquetReader(fr, new(T), 4)
	if err != nil {
		return nil, exception.New(componentName, fmt.Sprintf("failed to read parquet schema of '%s'", path), err, false)
	}
	defer pr.ReadStop()

	total := int(pr.GetNumRows())
	rows := make([]T, 0, total)
	for remaining := total; remaining > 0; {
		batch := readBatchSize
		if remaining < batch {
			batch = remaining
		}
		chunk := make([]T, batch)
		if err := pr.Read(&chunk); err != nil {
			return nil, exception.New(componentName, fmt.Sprintf("failed to read rows from '%s'", path), err, false)
		}
		rows = append(rows, chunk...)
		remaining -= batch
	}

	logger.Debugf("Loaded %d rows from '%s'", len(rows), path)
	return rows, nil
}

// Load reads all upstream feeds into a Snapshot. Feed failures are
// aggregated so a run reports every unreadable feed at once.
func Load(ctx context.Context, paths Paths) (*Snapshot, error) {
	var multiErr error
	snapshot := &Snapshot{}

	if flights, err := readParquet[FlightRecord](paths.Flights); err != nil {
		multiErr = multierror.Append(multiErr, err)
	} else {
		snapshot.Flights = flights
	}

	if weather, err := readParquet[WeatherObservation](paths.Weather); err != nil {
		multiErr = multierror.Append(multiErr, err)
	} else {
		snapshot.Weather = weather
	}

	if populations, err := readParquet[CityPopulation](paths.Populations); err != nil {
		multiErr = multierror.Append(multiErr, err)
	} else {
		snapshot.Populations = populations
	}

	if coverage, err := readParquet[ZipCoverage](paths.ZipCoverage); err != nil {
		multiErr = multierror.Append(multiErr, err)
	} else {
		snapshot.ZipCoverage = coverage
	}

	if pois, err := readParquet[PointOfInterest](paths.PointsOfInterest); err != nil {
		multiErr = multierror.Append(multiErr, err)
	} else {
		snapshot.PointsOfInterest = pois
	}

	if multiErr != nil {
		return nil, multiErr
	}
	return snapshot, nil
}

// Loader loads the upstream snapshot for a run. It exists as an interface
// so tasks can be tested against canned snapshots.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// FileLoader loads the snapshot from local Parquet files.
type FileLoader struct {
	paths Paths
}

// NewFileLoader creates a FileLoader reading from the given paths.
func NewFileLoader(paths Paths) *FileLoader {
	return &FileLoader{paths: paths}
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context) (*Snapshot, error) {
	return Load(ctx, l.paths)
}

var _ Loader = (*FileLoader)(nil)
