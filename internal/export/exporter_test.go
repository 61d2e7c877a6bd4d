package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/internal/domain/entity"
	"github.com/tripwind/tripwind/pkg/pipeline/adapter/storage"
	coreadapter "github.com/tripwind/tripwind/pkg/pipeline/core/adapter"
)

type uploadedObject struct {
	bucket      string
	objectName  string
	payload     []byte
	contentType string
}

type fakeStorageConnection struct {
	uploads   []uploadedObject
	uploadErr error
}

func (f *fakeStorageConnection) Close() error { return nil }
func (f *fakeStorageConnection) Type() string { return "fake" }
func (f *fakeStorageConnection) Name() string { return "archive" }

func (f *fakeStorageConnection) Upload(_ context.Context, bucket, objectName string, data io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, data); err != nil {
		return err
	}
	f.uploads = append(f.uploads, uploadedObject{bucket: bucket, objectName: objectName, payload: buf.Bytes(), contentType: contentType})
	return nil
}

func (f *fakeStorageConnection) Download(context.Context, string, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorageConnection) ListObjects(context.Context, string, string, func(string) error) error {
	return errors.New("not implemented")
}

func (f *fakeStorageConnection) DeleteObject(context.Context, string, string) error {
	return errors.New("not implemented")
}

type fakeStorageResolver struct {
	conn *fakeStorageConnection
	err  error
}

func (r *fakeStorageResolver) ResolveStorageConnection(context.Context, string) (storage.StorageConnection, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.conn, nil
}

func (r *fakeStorageResolver) ResolveConnection(ctx context.Context, name string) (coreadapter.ResourceConnection, error) {
	return r.ResolveStorageConnection(ctx, name)
}

func fp(v float64) *float64 { return &v }

func newExporter(t *testing.T, conn *fakeStorageConnection) *ParquetExporter {
	t.Helper()
	e, err := NewParquetExporter(Config{
		StorageRef:    "archive",
		Bucket:        "tripwind-snapshots",
		OutputBaseDir: "vacation_spots",
	}, &fakeStorageResolver{conn: conn})
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestParquetExporter_Export(t *testing.T) {
	conn := &fakeStorageConnection{}
	e := newExporter(t, conn)

	objectName, err := e.Export(context.Background(), []entity.VacationSpot{
		{City: "Seattle", Airport: "SEA", AvgTemperatureAirF: fp(71.5)},
		{City: "New York", Airport: "JFK"},
	})

	require.NoError(t, err)
	require.Len(t, conn.uploads, 1)
	up := conn.uploads[0]
	assert.Equal(t, objectName, up.objectName)
	assert.Equal(t, "tripwind-snapshots", up.bucket)
	assert.True(t, strings.HasPrefix(up.objectName, "vacation_spots/dt=2026-08-28/"), up.objectName)
	assert.True(t, strings.HasSuffix(up.objectName, ".parquet"), up.objectName)
	assert.Equal(t, "application/octet-stream", up.contentType)
	// A Parquet file starts and ends with the PAR1 magic bytes.
	require.Greater(t, len(up.payload), 8)
	assert.Equal(t, "PAR1", string(up.payload[:4]))
	assert.Equal(t, "PAR1", string(up.payload[len(up.payload)-4:]))
}

func TestParquetExporter_EmptySnapshotWritesNothing(t *testing.T) {
	conn := &fakeStorageConnection{}
	e := newExporter(t, conn)

	objectName, err := e.Export(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, objectName)
	assert.Empty(t, conn.uploads)
}

func TestParquetExporter_UploadFailure(t *testing.T) {
	conn := &fakeStorageConnection{uploadErr: errors.New("bucket gone")}
	e := newExporter(t, conn)

	_, err := e.Export(context.Background(), []entity.VacationSpot{{City: "Seattle", Airport: "SEA"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload snapshot")
}

func TestParquetExporter_ResolverFailure(t *testing.T) {
	e, err := NewParquetExporter(Config{
		StorageRef:    "archive",
		OutputBaseDir: "vacation_spots",
	}, &fakeStorageResolver{err: errors.New("unknown connection")})
	require.NoError(t, err)

	_, err = e.Export(context.Background(), []entity.VacationSpot{{City: "Seattle", Airport: "SEA"}})
	require.Error(t, err)
}

func TestNewParquetExporter_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing storage ref", Config{OutputBaseDir: "vacation_spots"}},
		{"missing base dir", Config{StorageRef: "archive"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParquetExporter(tt.cfg, &fakeStorageResolver{})
			require.Error(t, err)
		})
	}
}
