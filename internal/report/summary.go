package report

import (
	"fmt"
	"strings"

	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
)

// Summary renders per-category counts for both sources plus the key
// timing findings for the UniPlaySong playback path.
func (g *Generator) Summary() string {
	if g.store.Len() == 0 {
		return noEventsText
	}

	counts := g.store.Counts()
	upsCounts := counts[event.SourceUniPlaySong]
	psCounts := counts[event.SourcePlayniteSound]

	lines := header("SUMMARY REPORT")
	lines = append(lines,
		"\nEvent Counts by Type:",
		fmt.Sprintf("%-40s %-15s %-15s", "Event Type", "UniPlaySong", "PlayniteSound"),
		rule(),
	)

	// Categories absent from both sources are skipped.
	for _, cat := range event.Categories {
		ups := upsCounts[cat]
		ps := psCounts[cat]
		if ups == 0 && ps == 0 {
			continue
		}
		diffStr := ""
		if diff := ups - ps; diff != 0 {
			diffStr = fmt.Sprintf("(%+d)", diff)
		}
		lines = append(lines, fmt.Sprintf("%-40s %-15d %-15d %s", cat, ups, ps, diffStr))
	}

	lines = append(lines, "\n\nKEY FINDINGS:", rule())
	lines = append(lines, g.selectionOrderFinding()...)
	lines = append(lines, g.firstSelectClearFinding()...)

	return joinLines(lines)
}

// selectionOrderFinding reports whether the first game selection fires
// before the video state is known, the suspected cause of wrong playback
// decisions on startup.
func (g *Generator) selectionOrderFinding() []string {
	upsEvents := sortedBySource(g.store, event.SourceUniPlaySong)
	selections := store.OfCategory(upsEvents, event.CategoryGameSelected)
	videos := store.OfCategory(upsEvents, event.CategoryVideoPlaying)
	if len(selections) == 0 || len(videos) == 0 {
		return nil
	}

	firstSelection := selections[0]
	firstVideo := videos[0]
	if firstSelection.Timestamp.Before(firstVideo.Timestamp) {
		gap := firstVideo.Timestamp.Sub(firstSelection.Timestamp)
		return []string{
			"WARNING: UniPlaySong: OnGameSelected fires BEFORE VideoIsPlaying is set!",
			fmt.Sprintf("   OnGameSelected: %s", formatStamp(firstSelection.Timestamp)),
			fmt.Sprintf("   VideoIsPlaying: %s", formatStamp(firstVideo.Timestamp)),
			fmt.Sprintf("   Difference: %.1fms", float64(gap.Microseconds())/1000),
		}
	}
	return []string{"OK: UniPlaySong: VideoIsPlaying is set before OnGameSelected"}
}

// firstSelectClearFinding reports whether the first-select flag clears
// within the expected window after the first game selection.
func (g *Generator) firstSelectClearFinding() []string {
	upsEvents := sortedBySource(g.store, event.SourceUniPlaySong)
	selections := store.OfCategory(upsEvents, event.CategoryGameSelected)
	clears := store.Filter(upsEvents, func(e event.Event) bool {
		return e.Category == event.CategoryFirstSelect &&
			strings.Contains(strings.ToLower(e.Message), "false")
	})
	if len(selections) == 0 || len(clears) == 0 {
		return nil
	}

	gap := clears[0].Timestamp.Sub(selections[0].Timestamp)
	if gap.Abs() < g.cfg.FirstSelectWindow {
		return []string{"OK: UniPlaySong: _firstSelect cleared immediately after OnGameSelected"}
	}
	return []string{"WARNING: UniPlaySong: _firstSelect clearing timing differs from OnGameSelected"}
}
