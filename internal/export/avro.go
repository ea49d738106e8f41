package export

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"time"

	"github.com/linkedin/goavro/v2"

	"github.com/jittakal/logdiag/pkg/event"
	"github.com/jittakal/logdiag/pkg/export"
)

// Ensure implementation satisfies interface at compile time.
var _ export.Encoder = (*AvroEncoder)(nil)

// AvroEncoder implements export.Encoder for Apache Avro binary format.
// It supports optional gzip compression and produces OCF (Object Container
// File) output compatible with Apache Spark and other Avro readers.
type AvroEncoder struct {
	codec       *goavro.Codec
	compression string
}

// NewAvroEncoder creates a new Avro encoder with specified compression.
func NewAvroEncoder(compression string) (*AvroEncoder, error) {
	codec, err := goavro.NewCodec(avroSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}

	return &AvroEncoder{
		codec:       codec,
		compression: compression,
	}, nil
}

// avroSchema returns the Avro schema for exported events.
func avroSchema() string {
	return `{
		"type": "record",
		"name": "LogEvent",
		"namespace": "com.logdiag.export",
		"fields": [
			{"name": "timestamp", "type": "string"},
			{"name": "source", "type": "string"},
			{"name": "category", "type": "string"},
			{"name": "message", "type": "string"},
			{"name": "raw_line", "type": "string"},
			{"name": "first_select", "type": ["null", "boolean"], "default": null},
			{"name": "skip_music", "type": ["null", "boolean"], "default": null},
			{"name": "video_is_playing", "type": ["null", "string"], "default": null},
			{"name": "game", "type": ["null", "string"], "default": null},
			{"name": "active_view", "type": ["null", "string"], "default": null},
			{"name": "mode", "type": ["null", "string"], "default": null},
			{"name": "should_play_music", "type": ["null", "boolean"], "default": null},
			{"name": "should_play_audio", "type": ["null", "boolean"], "default": null}
		]
	}`
}

// Encode renders events as one in-memory Avro OCF file.
func (e *AvroEncoder) Encode(events []event.Event) ([]byte, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("no events to encode")
	}

	var buf bytes.Buffer
	var writer io.Writer = &buf
	var gzipWriter *gzip.Writer

	if e.compression == "gzip" || e.compression == "GZIP" {
		gzipWriter = gzip.NewWriter(&buf)
		writer = gzipWriter
	}

	ocfWriter, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:     writer,
		Codec: e.codec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OCF writer: %w", err)
	}

	for _, ev := range events {
		if err := ocfWriter.Append([]interface{}{toAvroMap(ev)}); err != nil {
			return nil, fmt.Errorf("failed to write event: %w", err)
		}
	}

	if gzipWriter != nil {
		if err := gzipWriter.Close(); err != nil {
			return nil, fmt.Errorf("failed to close gzip writer: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// Format returns the encoder format.
func (e *AvroEncoder) Format() export.Format {
	return export.FormatAvro
}

// FileExtension returns the artifact file extension.
func (e *AvroEncoder) FileExtension() string {
	if e.compression == "gzip" || e.compression == "GZIP" {
		return ".avro.gz"
	}
	return ".avro"
}

// toAvroMap converts an event to its Avro map representation. Optional
// fields use the goavro union encoding: nil for absent, a typed union map
// for present.
func toAvroMap(ev event.Event) map[string]interface{} {
	m := map[string]interface{}{
		"timestamp": ev.Timestamp.Format(time.RFC3339Nano),
		"source":    string(ev.Source),
		"category":  string(ev.Category),
		"message":   ev.Message,
		"raw_line":  ev.RawLine,
	}

	m["first_select"] = unionBool(ev.Metadata, event.MetaFirstSelect)
	m["skip_music"] = unionBool(ev.Metadata, event.MetaSkipMusic)
	m["video_is_playing"] = unionStr(ev.Metadata, event.MetaVideoIsPlaying)
	m["game"] = unionStr(ev.Metadata, event.MetaGame)
	m["active_view"] = unionStr(ev.Metadata, event.MetaActiveView)
	m["mode"] = unionStr(ev.Metadata, event.MetaMode)
	m["should_play_music"] = unionBool(ev.Metadata, event.MetaShouldPlayMusic)
	m["should_play_audio"] = unionBool(ev.Metadata, event.MetaShouldPlayAudio)

	return m
}

func unionBool(md event.Metadata, key string) interface{} {
	if v, ok := md.Bool(key); ok {
		return goavro.Union("boolean", v)
	}
	return nil
}

func unionStr(md event.Metadata, key string) interface{} {
	if v, ok := md.Str(key); ok {
		return goavro.Union("string", v)
	}
	return nil
}
