// Package export archives each harmonized snapshot as Parquet files in
// object storage, partitioned by run date.
package export

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/tripwind/tripwind/internal/domain/entity"
	"github.com/tripwind/tripwind/pkg/pipeline/adapter/storage"
	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

const componentName = "export"

// Config configures the snapshot exporter.
type Config struct {
	Enabled         bool   `yaml:"enabled"`
	StorageRef      string `yaml:"storage_ref"`
	Bucket          string `yaml:"bucket"`
	OutputBaseDir   string `yaml:"output_base_dir"`
	CompressionType string `yaml:"compression_type"`
}

// exportRow is the Parquet projection of one vacation spot.
type exportRow struct {
	City                        string   `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Airport                     string   `parquet:"name=airport, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CO2EmissionsKgPerPerson     *float64 `parquet:"name=co2_emissions_kg_per_person, type=DOUBLE, repetitiontype=OPTIONAL"`
	PunctualPct                 *float64 `parquet:"name=punctual_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	AvgTemperatureAirF          *float64 `parquet:"name=avg_temperature_air_f, type=DOUBLE, repetitiontype=OPTIONAL"`
	AvgRelativeHumidityPct      *float64 `parquet:"name=avg_relative_humidity_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	AvgCloudCoverPct            *float64 `parquet:"name=avg_cloud_cover_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	PrecipitationProbabilityPct *float64 `parquet:"name=precipitation_probability_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	AquariumCnt                 *int64   `parquet:"name=aquarium_cnt, type=INT64, repetitiontype=OPTIONAL"`
	ZooCnt                      *int64   `parquet:"name=zoo_cnt, type=INT64, repetitiontype=OPTIONAL"`
	KoreanRestaurantCnt         *int64   `parquet:"name=korean_restaurant_cnt, type=INT64, repetitiontype=OPTIONAL"`
}

func toExportRow(s entity.VacationSpot) exportRow {
	return exportRow{
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

// Exporter archives one snapshot and returns the written object name.
type Exporter interface {
	Export(ctx context.Context, spots []entity.VacationSpot) (string, error)
}

// ParquetExporter writes dt-partitioned Parquet files through a resolved
// storage connection.
type ParquetExporter struct {
	cfg      Config
	resolver storage.StorageConnectionResolver
	now      func() time.Time
}

// NewParquetExporter creates the exporter. StorageRef and OutputBaseDir
// are required when the exporter is enabled.
func NewParquetExporter(cfg Config, resolver storage.StorageConnectionResolver) (*ParquetExporter, error) {
	if cfg.StorageRef == "" {
		return nil, exception.New(componentName, "snapshot export requires 'storage_ref'", nil, false)
	}
	if cfg.OutputBaseDir == "" {
		return nil, exception.New(componentName, "snapshot export requires 'output_base_dir'", nil, false)
	}
	if cfg.CompressionType == "" {
		cfg.CompressionType = "SNAPPY"
	}
	return &ParquetExporter{cfg: cfg, resolver: resolver, now: time.Now}, nil
}

// Export writes the snapshot under OutputBaseDir/dt=YYYY-MM-DD/ with a
// collision-free file name. An empty snapshot writes nothing.
func (e *ParquetExporter) Export(ctx context.Context, spots []entity.VacationSpot) (string, error) {
	if len(spots) == 0 {
		logger.Debugf("Snapshot export skipped, nothing to archive")
		return "", nil
	}

	codec, err := compressionCodec(e.cfg.CompressionType)
	if err != nil {
		return "", exception.New(componentName, fmt.Sprintf("invalid compression type '%s'", e.cfg.CompressionType), err, false)
	}

	conn, err := e.resolver.ResolveStorageConnection(ctx, e.cfg.StorageRef)
	if err != nil {
		return "", exception.New(componentName, fmt.Sprintf("failed to resolve storage connection '%s'", e.cfg.StorageRef), err, true)
	}

	buf := new(bytes.Buffer)
	if err := e.encodeSnapshot(buf, spots, codec); err != nil {
		return "", err
	}

	runDate := e.now().UTC().Format("2006-01-02")
	fileName := fmt.Sprintf("data_%s_%s.parquet", e.now().UTC().Format("20060102150405"), randomSuffix(8))
	objectName := filepath.Join(e.cfg.OutputBaseDir, "dt="+runDate, fileName)

	if err := conn.Upload(ctx, e.cfg.Bucket, objectName, buf, "application/octet-stream"); err != nil {
		return "", exception.New(componentName, fmt.Sprintf("failed to upload snapshot to '%s'", objectName), err, true)
	}
	logger.Infof("Archived %d vacation spots to '%s'", len(spots), objectName)
	return objectName, nil
}

func (e *ParquetExporter) encodeSnapshot(buf *bytes.Buffer, spots []entity.VacationSpot, codec parquet.CompressionCodec) (err error) {
	// The library panics on schema misuse, keep that contained here.
	defer func() {
		if r := recover(); r != nil {
			err = exception.New(componentName, fmt.Sprintf("parquet encoder panicked: %v", r), nil, false)
		}
	}()

	pw, werr := writer.NewParquetWriterFromWriter(buf, new(exportRow), int64(len(spots)))
	if werr != nil {
		return exception.New(componentName, "failed to create parquet writer", werr, false)
	}
	pw.CompressionType = codec

	var multiErr error
	for _, spot := range spots {
		if werr := pw.Write(toExportRow(spot)); werr != nil {
			multiErr = multierror.Append(multiErr, werr)
		}
	}
	if werr := pw.WriteStop(); werr != nil {
		multiErr = multierror.Append(multiErr, werr)
	}
	if multiErr != nil {
		return exception.New(componentName, "failed to encode snapshot", multiErr, false)
	}
	return nil
}

func compressionCodec(name string) (parquet.CompressionCodec, error) {
	switch name {
	case "SNAPPY":
		return parquet.CompressionCodec_SNAPPY, nil
	case "GZIP":
		return parquet.CompressionCodec_GZIP, nil
	case "NONE":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	default:
		return parquet.CompressionCodec_SNAPPY, fmt.Errorf("unsupported compression type: %s", name)
	}
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(length int) string {
	seeded := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for n := range b {
		b[n] = suffixAlphabet[seeded.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
