package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jittakal/logdiag/internal/config/dto"
	"github.com/jittakal/logdiag/pkg/sink"
)

// NewWriter creates the artifact writer selected by the reports
// configuration.
func NewWriter(ctx context.Context, cfg dto.ReportsConfig, logger *slog.Logger, metrics MetricsCollector) (sink.Writer, error) {
	switch cfg.Backend {
	case "file":
		return NewFileWriter(FileConfig{
			BasePath: cfg.File.BasePath,
		}, logger, metrics)
	case "s3":
		return NewS3Writer(ctx, S3Config{
			Bucket:       cfg.S3.Bucket,
			Region:       cfg.S3.Region,
			BasePath:     cfg.S3.BasePath,
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
			SSEEnabled:   cfg.S3.SSEEnabled,
			SSEKMSKeyID:  cfg.S3.SSEKMSKeyID,
		}, logger, metrics)
	case "gcs":
		return NewGCSWriter(ctx, GCSConfig{
			Bucket:               cfg.GCS.Bucket,
			ProjectID:            cfg.GCS.ProjectID,
			BasePath:             cfg.GCS.BasePath,
			CredentialsFile:      cfg.GCS.CredentialsFile,
			UseDefaultCredential: cfg.GCS.UseDefaultCredential,
		}, logger, metrics)
	case "azure":
		return NewAzureWriter(AzureConfig{
			AccountName:   cfg.Azure.AccountName,
			AccountKey:    cfg.Azure.AccountKey,
			ContainerName: cfg.Azure.Container,
			Endpoint:      cfg.Azure.Endpoint,
		}, logger, metrics)
	default:
		return nil, fmt.Errorf("unsupported reports backend: %s", cfg.Backend)
	}
}
