// Package export implements event export encoders.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/jittakal/logdiag/pkg/event"
	"github.com/jittakal/logdiag/pkg/export"
)

// Ensure implementation satisfies interface at compile time.
var _ export.Encoder = (*ParquetEncoder)(nil)

// eventRow is the Parquet schema for exported events. Metadata fields are
// optional pointer columns so absent fields become proper NULLs.
type eventRow struct {
	Timestamp time.Time `parquet:"timestamp,timestamp(microsecond)"`
	Source    string    `parquet:"source,dict"`
	Category  string    `parquet:"category,dict"`
	Message   string    `parquet:"message"`
	RawLine   string    `parquet:"raw_line"`

	FirstSelect     *bool   `parquet:"first_select,optional"`
	SkipMusic       *bool   `parquet:"skip_music,optional"`
	VideoIsPlaying  *string `parquet:"video_is_playing,dict,optional"`
	Game            *string `parquet:"game,dict,optional"`
	ActiveView      *string `parquet:"active_view,dict,optional"`
	Mode            *string `parquet:"mode,dict,optional"`
	ShouldPlayMusic *bool   `parquet:"should_play_music,optional"`
	ShouldPlayAudio *bool   `parquet:"should_play_audio,optional"`
}

// ParquetEncoder implements export.Encoder for Apache Parquet columnar
// format. Supports multiple compression codecs: SNAPPY (default), GZIP,
// LZ4, ZSTD.
type ParquetEncoder struct {
	compressionName string
}

// NewParquetEncoder creates a new Parquet encoder with specified compression.
func NewParquetEncoder(compression string) *ParquetEncoder {
	return &ParquetEncoder{
		compressionName: compression,
	}
}

// compressionCodec converts string compression name to parquet WriterOption.
func compressionCodec(compression string) parquet.WriterOption {
	switch compression {
	case "snappy", "SNAPPY":
		return parquet.Compression(&parquet.Snappy)
	case "gzip", "GZIP":
		return parquet.Compression(&parquet.Gzip)
	case "lz4", "LZ4":
		return parquet.Compression(&parquet.Lz4Raw)
	case "zstd", "ZSTD":
		return parquet.Compression(&parquet.Zstd)
	case "uncompressed", "UNCOMPRESSED", "none", "NONE":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}

// Encode renders events as one in-memory Parquet file.
func (e *ParquetEncoder) Encode(events []event.Event) ([]byte, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("no events to encode")
	}

	rows := make([]eventRow, len(events))
	for i, ev := range events {
		rows[i] = toRow(ev)
	}

	var buf bytes.Buffer
	schema := parquet.SchemaOf(new(eventRow))
	writer := parquet.NewGenericWriter[eventRow](
		&buf,
		schema,
		compressionCodec(e.compressionName),
		parquet.CreatedBy("logdiag", "1.0", "0"),
	)

	if _, err := writer.Write(rows); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return buf.Bytes(), nil
}

// Format returns the encoder format.
func (e *ParquetEncoder) Format() export.Format {
	return export.FormatParquet
}

// FileExtension returns the artifact file extension.
func (e *ParquetEncoder) FileExtension() string {
	return ".parquet"
}

func toRow(ev event.Event) eventRow {
	row := eventRow{
		Timestamp: ev.Timestamp,
		Source:    string(ev.Source),
		Category:  string(ev.Category),
		Message:   ev.Message,
		RawLine:   ev.RawLine,
	}

	row.FirstSelect = optBool(ev.Metadata, event.MetaFirstSelect)
	row.SkipMusic = optBool(ev.Metadata, event.MetaSkipMusic)
	row.VideoIsPlaying = optStr(ev.Metadata, event.MetaVideoIsPlaying)
	row.Game = optStr(ev.Metadata, event.MetaGame)
	row.ActiveView = optStr(ev.Metadata, event.MetaActiveView)
	row.Mode = optStr(ev.Metadata, event.MetaMode)
	row.ShouldPlayMusic = optBool(ev.Metadata, event.MetaShouldPlayMusic)
	row.ShouldPlayAudio = optBool(ev.Metadata, event.MetaShouldPlayAudio)

	return row
}

func optBool(md event.Metadata, key string) *bool {
	if v, ok := md.Bool(key); ok {
		return &v
	}
	return nil
}

func optStr(md event.Metadata, key string) *string {
	if v, ok := md.Str(key); ok {
		return &v
	}
	return nil
}
