package sink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	apperrors "github.com/jittakal/logdiag/internal/errors"
	"github.com/jittakal/logdiag/pkg/sink"
)

// Ensure implementation satisfies interface at compile time.
var _ sink.Writer = (*GCSWriter)(nil)

// GCSConfig contains Google Cloud Storage configuration.
type GCSConfig struct {
	Bucket               string
	ProjectID            string
	BasePath             string
	CredentialsFile      string
	Endpoint             string
	UseDefaultCredential bool
}

// GCSWriter implements sink.Writer for Google Cloud Storage. It supports
// service account file and default (ADC) authentication.
type GCSWriter struct {
	client   *storage.Client
	bucket   string
	basePath string
	logger   *slog.Logger
	metrics  MetricsCollector
	mu       sync.Mutex
}

// NewGCSWriter creates a new Google Cloud Storage artifact writer.
func NewGCSWriter(ctx context.Context, cfg GCSConfig, logger *slog.Logger, metrics MetricsCollector) (*GCSWriter, error) {
	var clientOpts []option.ClientOption
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}

	if cfg.UseDefaultCredential {
		logger.Info("using default GCP credentials")
	} else if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
		logger.Info("using GCP credentials from file", "file", cfg.CredentialsFile)
	} else {
		logger.Info("no explicit credentials provided, using default GCP credentials")
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	logger.Info("GCS writer created",
		"bucket", cfg.Bucket,
		"project_id", cfg.ProjectID,
	)

	return &GCSWriter{
		client:   client,
		bucket:   cfg.Bucket,
		basePath: strings.Trim(cfg.BasePath, "/"),
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Put uploads one artifact to Google Cloud Storage.
func (w *GCSWriter) Put(ctx context.Context, name string, data []byte) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	startTime := time.Now()
	objectPath := name
	if w.basePath != "" {
		objectPath = w.basePath + "/" + name
	}

	obj := w.client.Bucket(w.bucket).Object(objectPath)
	gcsWriter := obj.NewWriter(ctx)
	gcsWriter.ContentType = contentType(name)

	if _, err := gcsWriter.Write(data); err != nil {
		gcsWriter.Close()
		if w.metrics != nil {
			w.metrics.IncSinkErrors("gcs", "upload")
			w.metrics.IncArtifactsWritten("gcs", "failure")
		}
		return 0, &apperrors.SinkError{
			Backend:   "gcs",
			Operation: "upload",
			Name:      name,
			Err:       err,
		}
	}

	// Close finalizes the upload.
	if err := gcsWriter.Close(); err != nil {
		if w.metrics != nil {
			w.metrics.IncSinkErrors("gcs", "close")
			w.metrics.IncArtifactsWritten("gcs", "failure")
		}
		return 0, &apperrors.SinkError{
			Backend:   "gcs",
			Operation: "upload",
			Name:      name,
			Err:       err,
		}
	}

	if w.metrics != nil {
		w.metrics.IncArtifactsWritten("gcs", "success")
		w.metrics.ObserveArtifactSize("gcs", float64(len(data)))
		w.metrics.ObserveSinkWriteDuration("gcs", time.Since(startTime).Seconds())
	}

	w.logger.Info("wrote artifact",
		"backend", "gcs",
		"bucket", w.bucket,
		"object", objectPath,
		"size", len(data),
	)

	return int64(len(data)), nil
}

// Close closes the GCS writer.
func (w *GCSWriter) Close() error {
	return w.client.Close()
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".txt"):
		return "text/plain; charset=utf-8"
	case strings.HasSuffix(name, ".avro"), strings.HasSuffix(name, ".avro.gz"):
		return "application/avro"
	default:
		return "application/octet-stream"
	}
}
