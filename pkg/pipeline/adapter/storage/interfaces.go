// Package storage defines the common interfaces for storage adapters.
// These interfaces abstract object storage operations so the pipeline can
// write snapshots to different backends through a unified API.
package storage

import (
	"context"
	"io"

	coreAdapter "github.com/tripwind/tripwind/pkg/pipeline/core/adapter"
)

// StorageExecutor defines generic object storage operations.
type StorageExecutor interface {
	// Upload uploads data to the specified bucket and object name.
	Upload(ctx context.Context, bucket, objectName string, data io.Reader, contentType string) error
	// Download downloads data from the specified bucket and object name.
	// The returned ReadCloser must be closed by the caller.
	Download(ctx context.Context, bucket, objectName string) (io.ReadCloser, error)
	// ListObjects lists objects within the specified bucket and prefix,
	// calling fn for each object name found.
	ListObjects(ctx context.Context, bucket, prefix string, fn func(objectName string) error) error
	// DeleteObject deletes the specified object from the bucket.
	DeleteObject(ctx context.Context, bucket, objectName string) error
}

// StorageConnection represents a generic object storage connection.
type StorageConnection interface {
	coreAdapter.ResourceConnection
	StorageExecutor
}

// StorageProvider manages the acquisition and lifecycle of storage connections
// of a single backend type.
type StorageProvider interface {
	// GetConnection retrieves a StorageConnection with the specified name.
	GetConnection(name string) (StorageConnection, error)
	// CloseAll closes all connections managed by this provider.
	CloseAll() error
	// Type returns the backend type handled by this provider (e.g., "local", "gcs").
	Type() string
}

// StorageConnectionResolver resolves storage connection instances by name.
type StorageConnectionResolver interface {
	coreAdapter.ResourceConnectionResolver

	// ResolveStorageConnection resolves a StorageConnection instance by name.
	ResolveStorageConnection(ctx context.Context, name string) (StorageConnection, error)
}

// StorageProviderGroup is the Fx group name used to collect all StorageProvider implementations.
const StorageProviderGroup = "storage_providers"
