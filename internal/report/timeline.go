package report

import (
	"fmt"

	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
)

// Timeline renders every stored event in 1-second windows, each line
// carrying the millisecond offset from the baseline, the source, the
// category and a truncated message.
func (g *Generator) Timeline() string {
	events := g.store.Events()
	if len(events) == 0 {
		return noEventsText
	}

	sorted := store.Sorted(events)
	baseline := sorted[0].Timestamp

	lines := header("TIMELINE COMPARISON REPORT")
	lines = append(lines,
		fmt.Sprintf("\nBaseline timestamp: %s", formatStamp(baseline)),
		fmt.Sprintf("Total events: %d", len(sorted)),
		fmt.Sprintf("UniPlaySong events: %d", len(g.store.BySource(event.SourceUniPlaySong))),
		fmt.Sprintf("PlayniteSound events: %d", len(g.store.BySource(event.SourcePlayniteSound))),
		"\n"+divider(),
		"\nEVENT TIMELINE:\n",
	)

	for _, w := range store.Windows(events) {
		lines = append(lines, fmt.Sprintf("\n--- Time Window: +%ds to +%ds ---", w.Index, w.Index+1))
		for _, e := range w.Events {
			lines = append(lines, fmt.Sprintf("  [%8.1fms] [%-15s] %-30s | %s",
				e.OffsetMillis(baseline), e.Source, e.Category,
				truncate(e.Message, g.cfg.TimelineMessageLen)))
		}
	}

	return joinLines(lines)
}
