// Package parser converts raw log lines into structured form.
//
// Three line formats are recognized, tried in fixed priority order:
//
//	Playnite extensions.log:  2024-01-01 10:00:00.000 | INFO | UniPlaySong | message
//	FileLogger:               [2024-01-01 10:00:00.000] [INFO] message
//	Bare:                     2024-01-01 10:00:00.000 message
//
// Any line matching none of these, or carrying a timestamp that fails both
// parse attempts, is skipped. The parser never propagates a failure past
// its own boundary; every malformed input degrades to a skip.
package parser

import (
	"errors"
	"regexp"
	"time"
)

// Sentinel errors describing why a line was skipped. They are reported for
// accounting only and never abort processing.
var (
	ErrUnrecognizedFormat = errors.New("line matches no known format")
	ErrBadTimestamp       = errors.New("timestamp failed all parse attempts")
)

// Parsed is the structured form of one raw log line. SourceHint carries the
// extension field of the tabular format; for the other formats it is empty
// and source resolution falls back to the message text.
type Parsed struct {
	Timestamp  time.Time
	Level      string
	SourceHint string
	Message    string
}

var (
	// Playnite extensions.log format: TIMESTAMP | LEVEL | EXTENSION | MESSAGE
	tabularPattern = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3})\s*\|\s*(\w+)\s*\|\s*(.*?)\s*\|\s*(.*)$`)

	// FileLogger format: [TIMESTAMP] [LEVEL] MESSAGE
	bracketedPattern = regexp.MustCompile(
		`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3})\]\s+\[(\w+)\]\s+(.*)$`)

	// Bare format: TIMESTAMP MESSAGE
	barePattern = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3})\s+(.*)$`)
)

// timestampLayouts is the ordered fallback chain for timestamp parsing:
// fractional seconds first, whole seconds second. Represented as a list so
// further formats can be appended without restructuring.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
}

// Parse attempts to recognize one trimmed, non-empty line. On failure it
// returns one of the skip sentinels; callers treat any error as "skip this
// line".
func Parse(line string) (Parsed, error) {
	var stamp string
	var p Parsed

	if m := tabularPattern.FindStringSubmatch(line); m != nil {
		stamp, p.Level, p.SourceHint, p.Message = m[1], m[2], m[3], m[4]
	} else if m := bracketedPattern.FindStringSubmatch(line); m != nil {
		stamp, p.Level, p.Message = m[1], m[2], m[3]
	} else if m := barePattern.FindStringSubmatch(line); m != nil {
		stamp, p.Message = m[1], m[2]
		p.Level = "INFO"
	} else {
		return Parsed{}, ErrUnrecognizedFormat
	}

	ts, err := parseTimestamp(stamp)
	if err != nil {
		return Parsed{}, ErrBadTimestamp
	}
	p.Timestamp = ts

	return p, nil
}

func parseTimestamp(stamp string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, stamp)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
