// Package gcs provides a Google Cloud Storage implementation of the storage adapter interfaces.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	storageAdapter "github.com/tripwind/tripwind/pkg/pipeline/adapter/storage"
	storageConfig "github.com/tripwind/tripwind/pkg/pipeline/adapter/storage/config"
	coreConfig "github.com/tripwind/tripwind/pkg/pipeline/core/config"
	"github.com/tripwind/tripwind/pkg/pipeline/support/configbinder"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// ProviderType defines the type identifier for this GCS storage provider.
const ProviderType = "gcs"

// gcsAdapter implements storage.StorageConnection backed by a GCS client.
type gcsAdapter struct {
	client *gcstorage.Client
	cfg    storageConfig.StorageConfig
	name   string
}

var _ storageAdapter.StorageConnection = (*gcsAdapter)(nil)

// NewGCSAdapter creates a new gcsAdapter instance. When no credentials file
// is configured the client falls back to Application Default Credentials.
func NewGCSAdapter(ctx context.Context, cfg storageConfig.StorageConfig, name string) (storageAdapter.StorageConnection, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs adapter '%s': failed to create client: %w", name, err)
	}

	return &gcsAdapter{
		client: client,
		cfg:    cfg,
		name:   name,
	}, nil
}

func (a *gcsAdapter) Close() error {
	logger.Debugf("Closing GCS storage connection '%s'.", a.name)
	return a.client.Close()
}

func (a *gcsAdapter) Type() string {
	return ProviderType
}

func (a *gcsAdapter) Name() string {
	return a.name
}

func (a *gcsAdapter) bucketName(bucket string) string {
	if bucket == "" {
		return a.cfg.BucketName
	}
	return bucket
}

// Upload streams data to the specified object.
func (a *gcsAdapter) Upload(ctx context.Context, bucket, objectName string, data io.Reader, contentType string) error {
	obj := a.client.Bucket(a.bucketName(bucket)).Object(objectName)

	w := obj.NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write failed for '%s': %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close failed for '%s': %w", objectName, err)
	}

	logger.Debugf("Uploaded object '%s' to GCS bucket '%s'.", objectName, a.bucketName(bucket))
	return nil
}

// Download opens a reader for the specified object. The returned
// io.ReadCloser must be closed by the caller.
func (a *gcsAdapter) Download(ctx context.Context, bucket, objectName string) (io.ReadCloser, error) {
	obj := a.client.Bucket(a.bucketName(bucket)).Object(objectName)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read failed for '%s': %w", objectName, err)
	}
	return reader, nil
}

// ListObjects iterates over objects under the prefix and calls fn for each.
func (a *gcsAdapter) ListObjects(ctx context.Context, bucket, prefix string, fn func(objectName string) error) error {
	it := a.client.Bucket(a.bucketName(bucket)).Objects(ctx, &gcstorage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("gcs list failed for prefix '%s': %w", prefix, err)
		}
		if err := fn(attrs.Name); err != nil {
			return err
		}
	}
	return nil
}

// DeleteObject deletes the specified object. A missing object is not an error.
func (a *gcsAdapter) DeleteObject(ctx context.Context, bucket, objectName string) error {
	obj := a.client.Bucket(a.bucketName(bucket)).Object(objectName)
	if err := obj.Delete(ctx); err != nil {
		if errors.Is(err, gcstorage.ErrObjectNotExist) {
			logger.Warnf("Attempted to delete non-existent GCS object '%s'.", objectName)
			return nil
		}
		return fmt.Errorf("gcs delete failed for '%s': %w", objectName, err)
	}
	return nil
}

// GCSProvider implements storage.StorageProvider for GCS connections.
type GCSProvider struct {
	cfg         *coreConfig.Config
	connections map[string]storageAdapter.StorageConnection
	mu          sync.RWMutex
}

// NewGCSProvider creates a new GCSProvider instance.
func NewGCSProvider(cfg *coreConfig.Config) storageAdapter.StorageProvider {
	return &GCSProvider{
		cfg:         cfg,
		connections: make(map[string]storageAdapter.StorageConnection),
	}
}

// GetConnection retrieves a StorageConnection by name, creating it on first use.
func (p *GCSProvider) GetConnection(name string) (storageAdapter.StorageConnection, error) {
	p.mu.RLock()
	conn, ok := p.connections[name]
	p.mu.RUnlock()
	if ok {
		return conn, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	conn, ok = p.connections[name]
	if ok {
		return conn, nil
	}

	rawConfig, ok := p.cfg.Tripwind.StorageConfigs[name]
	if !ok {
		return nil, fmt.Errorf("storage configuration for name '%s' not found", name)
	}
	configMap, ok := rawConfig.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid storage configuration format for '%s': expected a mapping", name)
	}

	var storageCfg storageConfig.StorageConfig
	if err := configbinder.BindProperties(configMap, &storageCfg); err != nil {
		return nil, fmt.Errorf("failed to decode storage config for '%s': %w", name, err)
	}

	if storageCfg.Type != ProviderType {
		return nil, fmt.Errorf("storage config type mismatch for '%s': expected '%s', got '%s'", name, ProviderType, storageCfg.Type)
	}

	newConn, err := NewGCSAdapter(context.Background(), storageCfg, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS adapter for '%s': %w", name, err)
	}

	p.connections[name] = newConn
	logger.Debugf("Created new GCS storage connection '%s'.", name)
	return newConn, nil
}

// CloseAll closes all connections managed by this provider.
func (p *GCSProvider) CloseAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for name, conn := range p.connections {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close GCS storage connection '%s': %w", name, err))
		}
		delete(p.connections, name)
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing GCS storage connections: %v", errs)
	}
	return nil
}

// Type returns the type of resource handled by this provider.
func (p *GCSProvider) Type() string {
	return ProviderType
}
