// Package sink defines the interface for persisting generated artifacts.
//
// This package provides the abstraction the report generator writes
// through; implementations cover the local filesystem and the S3, GCS
// and Azure Blob object stores.
package sink

import "context"

// Writer persists named artifacts (report texts, event exports).
type Writer interface {
	// Put stores data under the given artifact name and returns the
	// number of bytes written.
	Put(ctx context.Context, name string, data []byte) (int64, error)

	// Close closes the writer and releases resources.
	Close() error
}
