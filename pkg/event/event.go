// Package event defines the core event model for log comparison analysis.
package event

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Source identifies the extension that emitted a log line.
type Source string

const (
	SourceUniPlaySong   Source = "UniPlaySong"
	SourcePlayniteSound Source = "PlayniteSound"
	SourceUnknown       Source = "Unknown"
)

// KnownSources lists the two sources events may be attributed to.
// Lines resolving to SourceUnknown are discarded before an Event is built.
var KnownSources = []Source{SourceUniPlaySong, SourcePlayniteSound}

// Category is the semantic classification of an event's message.
type Category string

const (
	CategoryGameSelected      Category = "OnGameSelected"
	CategoryAppStarted        Category = "OnApplicationStarted"
	CategorySettingsChanged   Category = "OnSettingsChanged"
	CategoryVideoPlaying      Category = "VideoIsPlaying"
	CategoryShouldPlayMusic   Category = "ShouldPlayMusic"
	CategoryShouldPlayAudio   Category = "ShouldPlayAudio"
	CategoryPlayMusicDecision Category = "PlayMusicBasedOnSelected"
	CategoryPauseMusic        Category = "PauseMusic"
	CategoryResumeMusic       Category = "ResumeMusic"
	CategoryFirstSelect       Category = "_firstSelect"
	CategoryMediaMonitor      Category = "MediaElementsMonitor"
	CategoryMainModelChanged  Category = "OnMainModelChanged"
	CategoryOther             Category = "Other"
)

// Categories lists every category in classification-rule order.
// The order is significant: classification evaluates rules top to bottom
// and the first match wins.
var Categories = []Category{
	CategoryGameSelected,
	CategoryAppStarted,
	CategorySettingsChanged,
	CategoryVideoPlaying,
	CategoryShouldPlayMusic,
	CategoryShouldPlayAudio,
	CategoryPlayMusicDecision,
	CategoryPauseMusic,
	CategoryResumeMusic,
	CategoryFirstSelect,
	CategoryMediaMonitor,
	CategoryMainModelChanged,
	CategoryOther,
}

// CriticalCategories is the subset of categories relevant to the playback
// timing diagnosis. Monitor ticks, model changes and the catch-all are
// excluded.
var CriticalCategories = []Category{
	CategoryAppStarted,
	CategoryGameSelected,
	CategoryVideoPlaying,
	CategoryFirstSelect,
	CategoryShouldPlayMusic,
	CategoryShouldPlayAudio,
	CategoryPlayMusicDecision,
	CategoryPauseMusic,
	CategoryResumeMusic,
}

// IsCritical reports whether c is one of the critical categories.
func (c Category) IsCritical() bool {
	for _, cc := range CriticalCategories {
		if c == cc {
			return true
		}
	}
	return false
}

// Metadata field keys. The key set is fixed; extraction never synthesizes
// keys outside this vocabulary.
const (
	MetaFirstSelect     = "firstSelect"
	MetaSkipMusic       = "skipMusic"
	MetaVideoIsPlaying  = "videoIsPlaying"
	MetaGame            = "game"
	MetaActiveView      = "activeView"
	MetaMode            = "mode"
	MetaShouldPlayMusic = "shouldPlayMusic"
	MetaShouldPlayAudio = "shouldPlayAudio"
)

// MetadataKeys lists every metadata key that extraction may produce.
var MetadataKeys = []string{
	MetaFirstSelect,
	MetaSkipMusic,
	MetaVideoIsPlaying,
	MetaGame,
	MetaActiveView,
	MetaMode,
	MetaShouldPlayMusic,
	MetaShouldPlayAudio,
}

// Metadata is a sparse map of extracted field values. Values are either
// bool or string; absent fields are simply not present in the map.
type Metadata map[string]any

// String renders metadata as "key=value" pairs in stable key order.
func (m Metadata) String() string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	b.WriteString("}")
	return b.String()
}

// Bool returns the boolean value stored under key, if present.
func (m Metadata) Bool(key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

// Str returns the string value stored under key, if present.
func (m Metadata) Str(key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// Event is one normalized, classified log line. Events are immutable once
// built; the store owns them for the lifetime of a run.
type Event struct {
	Timestamp time.Time
	Source    Source
	Category  Category
	Message   string
	RawLine   string
	Metadata  Metadata
}

// OffsetFrom returns the elapsed time from baseline to the event.
func (e Event) OffsetFrom(baseline time.Time) time.Duration {
	return e.Timestamp.Sub(baseline)
}

// OffsetMillis returns the elapsed time from baseline in milliseconds,
// with sub-millisecond precision.
func (e Event) OffsetMillis(baseline time.Time) float64 {
	return e.Timestamp.Sub(baseline).Seconds() * 1000
}
