// Package extract recovers metadata fields from log message text.
//
// Extraction is independent of classification: every field pattern is
// applied to every message, and each field is present in the result only
// when its pattern matched. The field vocabulary is fixed; see
// event.MetadataKeys.
package extract

import (
	"regexp"
	"strings"

	"github.com/jittakal/logdiag/pkg/event"
)

var (
	firstSelectPattern = regexp.MustCompile(`(?i)FirstSelect[:\s]+(true|false)`)
	skipMusicPattern   = regexp.MustCompile(`(?i)SkipMusic[:\s]+(true|false)`)

	// VideoIsPlaying is either a plain boolean or a transition
	// description like "changing from false to true"; the raw matched
	// text is kept as the value.
	videoPlayingPattern = regexp.MustCompile(`(?i)VideoIsPlaying[:\s]+(true|false|changing from \w+ to \w+)`)

	// Game names run until a comma or opening parenthesis.
	gamePattern = regexp.MustCompile(`(?i)Game[:\s]+([^,(]+)`)

	activeViewPattern = regexp.MustCompile(`(?i)ActiveView[:\s]+([^\s,]+)`)
	modePattern       = regexp.MustCompile(`(?i)Mode[:\s]+(Desktop|Fullscreen)`)

	shouldPlayMusicPattern = regexp.MustCompile(`(?i)ShouldPlayMusic[:\s]+(returned|returned:)\s*(true|false)`)
	shouldPlayAudioPattern = regexp.MustCompile(`(?i)ShouldPlayAudio[:\s]+(returned|returned:)\s*(true|false)`)
)

// Extract scans a message for every known metadata field. Fields whose
// pattern does not match are omitted from the returned map.
func Extract(message string) event.Metadata {
	md := event.Metadata{}

	if m := firstSelectPattern.FindStringSubmatch(message); m != nil {
		md[event.MetaFirstSelect] = strings.EqualFold(m[1], "true")
	}
	if m := skipMusicPattern.FindStringSubmatch(message); m != nil {
		md[event.MetaSkipMusic] = strings.EqualFold(m[1], "true")
	}
	if m := videoPlayingPattern.FindStringSubmatch(message); m != nil {
		md[event.MetaVideoIsPlaying] = m[1]
	}
	if m := gamePattern.FindStringSubmatch(message); m != nil {
		md[event.MetaGame] = strings.TrimSpace(m[1])
	}
	if m := activeViewPattern.FindStringSubmatch(message); m != nil {
		md[event.MetaActiveView] = m[1]
	}
	if m := modePattern.FindStringSubmatch(message); m != nil {
		md[event.MetaMode] = m[1]
	}
	if m := shouldPlayMusicPattern.FindStringSubmatch(message); m != nil {
		md[event.MetaShouldPlayMusic] = strings.EqualFold(m[2], "true")
	}
	if m := shouldPlayAudioPattern.FindStringSubmatch(message); m != nil {
		md[event.MetaShouldPlayAudio] = strings.EqualFold(m[2], "true")
	}

	return md
}
