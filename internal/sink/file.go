// Package sink implements artifact writer implementations.
package sink

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/jittakal/logdiag/internal/errors"
	"github.com/jittakal/logdiag/pkg/sink"
)

// Ensure implementation satisfies interface at compile time.
var _ sink.Writer = (*FileWriter)(nil)

// MetricsCollector defines metrics operations for sinks.
type MetricsCollector interface {
	IncArtifactsWritten(backend, status string)
	ObserveArtifactSize(backend string, size float64)
	ObserveSinkWriteDuration(backend string, duration float64)
	IncSinkErrors(backend, operation string)
}

// FileConfig contains local filesystem configuration.
type FileConfig struct {
	BasePath string
}

// FileWriter implements sink.Writer for local filesystem storage. All
// artifacts land directly under the base path.
type FileWriter struct {
	basePath string
	logger   *slog.Logger
	metrics  MetricsCollector
	mu       sync.Mutex
}

// NewFileWriter creates a new filesystem artifact writer.
func NewFileWriter(config FileConfig, logger *slog.Logger, metrics MetricsCollector) (*FileWriter, error) {
	// Ensure base path exists
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, &apperrors.SinkError{
			Backend:   "file",
			Operation: "create",
			Name:      config.BasePath,
			Err:       err,
		}
	}

	logger.Info("file writer created", "base_path", config.BasePath)

	return &FileWriter{
		basePath: config.BasePath,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Put writes one artifact under the base path.
func (w *FileWriter) Put(ctx context.Context, name string, data []byte) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	startTime := time.Now()
	path := filepath.Join(w.basePath, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		if w.metrics != nil {
			w.metrics.IncSinkErrors("file", "put")
			w.metrics.IncArtifactsWritten("file", "failure")
		}
		return 0, &apperrors.SinkError{
			Backend:   "file",
			Operation: "put",
			Name:      name,
			Err:       err,
		}
	}

	if w.metrics != nil {
		w.metrics.IncArtifactsWritten("file", "success")
		w.metrics.ObserveArtifactSize("file", float64(len(data)))
		w.metrics.ObserveSinkWriteDuration("file", time.Since(startTime).Seconds())
	}

	w.logger.Info("wrote artifact",
		"backend", "file",
		"path", path,
		"size", len(data),
	)

	return int64(len(data)), nil
}

// Close closes the file writer.
func (w *FileWriter) Close() error {
	return nil
}
