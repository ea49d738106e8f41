package report

import (
	"fmt"
	"time"

	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
)

// Comparison renders a side-by-side view of the categories most relevant
// to the playback timing diagnosis: game selections, video state changes
// and first-select transitions.
func (g *Generator) Comparison() string {
	lines := header("SIDE-BY-SIDE COMPARISON")

	upsEvents := sortedBySource(g.store, event.SourceUniPlaySong)
	psEvents := sortedBySource(g.store, event.SourcePlayniteSound)

	upsSelections := store.OfCategory(upsEvents, event.CategoryGameSelected)
	psSelections := store.OfCategory(psEvents, event.CategoryGameSelected)

	lines = append(lines,
		"\nOnGameSelected Events:",
		fmt.Sprintf("  UniPlaySong: %d", len(upsSelections)),
		fmt.Sprintf("  PlayniteSound: %d", len(psSelections)),
		"\n"+rule(),
	)

	if len(upsSelections) > 0 && len(psSelections) > 0 {
		upsFirst := upsSelections[0]
		psFirst := psSelections[0]

		lines = append(lines, "\nFirst OnGameSelected Comparison:")
		lines = append(lines,
			fmt.Sprintf("\nUniPlaySong (at %s):", formatStamp(upsFirst.Timestamp)),
			fmt.Sprintf("  %s", upsFirst.Message),
		)
		if len(upsFirst.Metadata) > 0 {
			lines = append(lines, fmt.Sprintf("  Metadata: %s", upsFirst.Metadata))
		}
		lines = append(lines,
			fmt.Sprintf("\nPlayniteSound (at %s):", formatStamp(psFirst.Timestamp)),
			fmt.Sprintf("  %s", psFirst.Message),
		)
		if len(psFirst.Metadata) > 0 {
			lines = append(lines, fmt.Sprintf("  Metadata: %s", psFirst.Metadata))
		}

		diff := upsFirst.Timestamp.Sub(psFirst.Timestamp)
		lines = append(lines, fmt.Sprintf("\nTime difference: %.1fms", float64(diff.Microseconds())/1000))
		if diff.Abs() > g.cfg.SignificantDiff {
			lines = append(lines, fmt.Sprintf("  WARNING: Significant timing difference (>%dms)!",
				g.cfg.SignificantDiff.Milliseconds()))
		}
	}

	upsVideo := store.OfCategory(upsEvents, event.CategoryVideoPlaying)
	psVideo := store.OfCategory(psEvents, event.CategoryVideoPlaying)

	lines = append(lines,
		"\n\nVideoIsPlaying Changes:",
		fmt.Sprintf("  UniPlaySong: %d", len(upsVideo)),
		fmt.Sprintf("  PlayniteSound: %d", len(psVideo)),
	)

	if len(upsVideo) > 0 && len(psVideo) > 0 {
		lines = append(lines,
			"\nFirst VideoIsPlaying Change:",
			fmt.Sprintf("\nUniPlaySong: %s", upsVideo[0].Message),
			fmt.Sprintf("PlayniteSound: %s", psVideo[0].Message),
		)
	}

	upsFirstSel := store.OfCategory(upsEvents, event.CategoryFirstSelect)
	psFirstSel := store.OfCategory(psEvents, event.CategoryFirstSelect)

	lines = append(lines,
		"\n\n_firstSelect State Changes:",
		fmt.Sprintf("  UniPlaySong: %d", len(upsFirstSel)),
		fmt.Sprintf("  PlayniteSound: %d", len(psFirstSel)),
	)

	baseline, _ := g.store.Baseline()
	if len(upsFirstSel) > 0 {
		lines = append(lines, "\nUniPlaySong _firstSelect changes:")
		lines = append(lines, g.firstSelectLines(upsFirstSel, baseline)...)
	}
	if len(psFirstSel) > 0 {
		lines = append(lines, "\nPlayniteSound _firstSelect changes:")
		lines = append(lines, g.firstSelectLines(psFirstSel, baseline)...)
	}

	return joinLines(lines)
}

// firstSelectLines renders up to FirstSelectListMax transitions with
// offsets from the run baseline.
func (g *Generator) firstSelectLines(events []event.Event, baseline time.Time) []string {
	if len(events) > g.cfg.FirstSelectListMax {
		events = events[:g.cfg.FirstSelectListMax]
	}
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, fmt.Sprintf("  [%8.1fms] %s", e.OffsetMillis(baseline), e.Message))
	}
	return out
}
