// Package export defines interfaces for encoding normalized events to
// columnar file formats for downstream analysis.
package export

import "github.com/jittakal/logdiag/pkg/event"

// Format represents an export file format.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatAvro    Format = "avro"
)

// Encoder encodes events to a specific file format.
type Encoder interface {
	// Encode serializes events and returns the encoded bytes.
	Encode(events []event.Event) ([]byte, error)

	// Format returns the file format this encoder produces.
	Format() Format

	// FileExtension returns the file extension (e.g., ".parquet", ".avro").
	FileExtension() string
}
