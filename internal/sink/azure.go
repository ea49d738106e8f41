package sink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "github.com/jittakal/logdiag/internal/errors"
	"github.com/jittakal/logdiag/pkg/sink"
)

// Ensure implementation satisfies interface at compile time.
var _ sink.Writer = (*AzureWriter)(nil)

// AzureConfig contains Azure Blob Storage configuration.
type AzureConfig struct {
	AccountName   string
	AccountKey    string
	ContainerName string
	BasePath      string
	Endpoint      string
}

// AzureWriter implements sink.Writer for Azure Blob Storage using access
// key authentication.
type AzureWriter struct {
	client        *azblob.Client
	containerName string
	basePath      string
	logger        *slog.Logger
	metrics       MetricsCollector
	mu            sync.Mutex
}

// NewAzureWriter creates a new Azure Blob artifact writer.
func NewAzureWriter(cfg AzureConfig, logger *slog.Logger, metrics MetricsCollector) (*AzureWriter, error) {
	// Build connection string
	var connectionString string
	if cfg.Endpoint != "" {
		connectionString = fmt.Sprintf("DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;BlobEndpoint=%s",
			cfg.AccountName, cfg.AccountKey, cfg.Endpoint)
	} else {
		connectionString = fmt.Sprintf("DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;EndpointSuffix=core.windows.net",
			cfg.AccountName, cfg.AccountKey)
	}

	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	logger.Info("Azure writer created",
		"container", cfg.ContainerName,
		"account", cfg.AccountName,
	)

	return &AzureWriter{
		client:        client,
		containerName: cfg.ContainerName,
		basePath:      strings.Trim(cfg.BasePath, "/"),
		logger:        logger,
		metrics:       metrics,
	}, nil
}

// Put uploads one artifact to Azure Blob Storage.
func (w *AzureWriter) Put(ctx context.Context, name string, data []byte) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	startTime := time.Now()
	blobPath := name
	if w.basePath != "" {
		blobPath = w.basePath + "/" + name
	}

	if _, err := w.client.UploadBuffer(ctx, w.containerName, blobPath, data, nil); err != nil {
		if w.metrics != nil {
			w.metrics.IncSinkErrors("azure", "upload")
			w.metrics.IncArtifactsWritten("azure", "failure")
		}
		return 0, &apperrors.SinkError{
			Backend:   "azure",
			Operation: "upload",
			Name:      name,
			Err:       err,
		}
	}

	if w.metrics != nil {
		w.metrics.IncArtifactsWritten("azure", "success")
		w.metrics.ObserveArtifactSize("azure", float64(len(data)))
		w.metrics.ObserveSinkWriteDuration("azure", time.Since(startTime).Seconds())
	}

	w.logger.Info("wrote artifact",
		"backend", "azure",
		"container", w.containerName,
		"blob", blobPath,
		"size", len(data),
	)

	return int64(len(data)), nil
}

// Close closes the Azure writer.
func (w *AzureWriter) Close() error {
	return nil
}
