package export

import (
	"fmt"

	"github.com/jittakal/logdiag/pkg/export"
)

// Factory creates encoders based on format and configuration.
type Factory struct {
	format      export.Format
	compression string
}

// NewFactory creates a new encoder factory.
func NewFactory(format export.Format, compression string) *Factory {
	return &Factory{
		format:      format,
		compression: compression,
	}
}

// CreateEncoder creates an encoder based on the configured format.
func (f *Factory) CreateEncoder() (export.Encoder, error) {
	switch f.format {
	case export.FormatParquet:
		return NewParquetEncoder(f.compression), nil
	case export.FormatAvro:
		return NewAvroEncoder(f.compression)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", f.format)
	}
}

// SupportedFormats returns a list of supported export formats.
func SupportedFormats() []export.Format {
	return []export.Format{
		export.FormatParquet,
		export.FormatAvro,
	}
}

// SupportedCompressions returns supported compression codecs for a format.
func SupportedCompressions(format export.Format) []string {
	switch format {
	case export.FormatParquet:
		return []string{"uncompressed", "snappy", "gzip", "lz4", "zstd"}
	case export.FormatAvro:
		return []string{"uncompressed", "gzip"}
	default:
		return []string{}
	}
}

// DefaultCompression returns the default compression for a format.
func DefaultCompression(format export.Format) string {
	switch format {
	case export.FormatParquet:
		return "snappy"
	case export.FormatAvro:
		return "gzip"
	default:
		return "uncompressed"
	}
}
