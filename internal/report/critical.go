package report

import (
	"fmt"

	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
)

const noCriticalText = "No critical events to report."

// Critical renders only the playback-relevant event categories, grouped
// per source, with offsets measured from the earliest critical event.
func (g *Generator) Critical() string {
	critical := store.Filter(g.store.Events(), func(e event.Event) bool {
		return e.Category.IsCritical()
	})
	if len(critical) == 0 {
		return noCriticalText
	}

	sorted := store.Sorted(critical)
	baseline := sorted[0].Timestamp

	lines := header("CRITICAL EVENTS ANALYSIS")
	lines = append(lines,
		fmt.Sprintf("\nFound %d critical events\n", len(sorted)),
		divider(),
	)

	for _, src := range event.KnownSources {
		var srcEvents []event.Event
		for _, e := range sorted {
			if e.Source == src {
				srcEvents = append(srcEvents, e)
			}
		}
		if len(srcEvents) == 0 {
			continue
		}

		lines = append(lines,
			fmt.Sprintf("\n%s Critical Events:", src),
			rule(),
		)
		for _, e := range srcEvents {
			lines = append(lines,
				fmt.Sprintf("\n[%8.1fms] %s", e.OffsetMillis(baseline), e.Category),
				fmt.Sprintf("  Message: %s", e.Message),
			)
			if len(e.Metadata) > 0 {
				lines = append(lines, fmt.Sprintf("  Metadata: %s", e.Metadata))
			}
		}
	}

	return joinLines(lines)
}
