package sink

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	apperrors "github.com/jittakal/logdiag/internal/errors"
	"github.com/jittakal/logdiag/pkg/sink"
)

// Ensure implementation satisfies interface at compile time.
var _ sink.Writer = (*S3Writer)(nil)

// S3Config contains AWS S3 configuration.
type S3Config struct {
	Bucket       string
	Region       string
	BasePath     string
	Endpoint     string
	UsePathStyle bool
	SSEEnabled   bool
	SSEKMSKeyID  string
}

// S3Writer implements sink.Writer for AWS S3. It provides multipart
// upload support and server-side encryption (SSE).
type S3Writer struct {
	uploader    *manager.Uploader
	bucket      string
	basePath    string
	sseEnabled  bool
	sseKMSKeyID string
	logger      *slog.Logger
	metrics     MetricsCollector
	mu          sync.Mutex
}

// NewS3Writer creates a new S3 artifact writer.
func NewS3Writer(ctx context.Context, cfg S3Config, logger *slog.Logger, metrics MetricsCollector) (*S3Writer, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	uploader := manager.NewUploader(s3Client, func(u *manager.Uploader) {
		u.PartSize = 10 * 1024 * 1024 // 10MB parts
		u.Concurrency = 5
	})

	logger.Info("S3 writer created",
		"bucket", cfg.Bucket,
		"region", cfg.Region,
		"sse_enabled", cfg.SSEEnabled,
	)

	return &S3Writer{
		uploader:    uploader,
		bucket:      cfg.Bucket,
		basePath:    strings.Trim(cfg.BasePath, "/"),
		sseEnabled:  cfg.SSEEnabled,
		sseKMSKeyID: cfg.SSEKMSKeyID,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

// Put uploads one artifact to S3.
func (w *S3Writer) Put(ctx context.Context, name string, data []byte) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	startTime := time.Now()
	key := name
	if w.basePath != "" {
		key = w.basePath + "/" + name
	}

	uploadInput := &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}

	if w.sseEnabled {
		if w.sseKMSKeyID != "" {
			uploadInput.ServerSideEncryption = types.ServerSideEncryptionAwsKms
			uploadInput.SSEKMSKeyId = aws.String(w.sseKMSKeyID)
		} else {
			uploadInput.ServerSideEncryption = types.ServerSideEncryptionAes256
		}
	}

	if _, err := w.uploader.Upload(ctx, uploadInput); err != nil {
		if w.metrics != nil {
			w.metrics.IncSinkErrors("s3", "upload")
			w.metrics.IncArtifactsWritten("s3", "failure")
		}
		return 0, &apperrors.SinkError{
			Backend:   "s3",
			Operation: "upload",
			Name:      name,
			Err:       err,
		}
	}

	if w.metrics != nil {
		w.metrics.IncArtifactsWritten("s3", "success")
		w.metrics.ObserveArtifactSize("s3", float64(len(data)))
		w.metrics.ObserveSinkWriteDuration("s3", time.Since(startTime).Seconds())
	}

	w.logger.Info("wrote artifact",
		"backend", "s3",
		"bucket", w.bucket,
		"key", key,
		"size", len(data),
	)

	return int64(len(data)), nil
}

// Close closes the S3 writer.
func (w *S3Writer) Close() error {
	return nil
}
