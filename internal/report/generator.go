// Package report derives diagnostic report texts from a populated event
// store.
//
// Four independent views are produced: a windowed timeline, a critical
// event listing, a pairwise source comparison, and a summary with count
// tables and timing findings. Every view is a pure derivation; the store
// is never mutated and reports may be regenerated at will.
package report

import (
	"strings"
	"time"

	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
)

const reportWidth = 100

// noEventsText is returned by any view over an empty store.
const noEventsText = "No events to report."

// Config carries the tunable report parameters. The timing thresholds are
// heuristics inherited from the playback diagnosis, not derived constants;
// they default to 100ms.
type Config struct {
	// SignificantDiff is the first-occurrence timing gap above which the
	// pairwise comparison flags a significant difference.
	SignificantDiff time.Duration

	// FirstSelectWindow is how soon after the first game selection the
	// first-select flag is expected to clear.
	FirstSelectWindow time.Duration

	// TimelineMessageLen truncates messages in the timeline view.
	TimelineMessageLen int

	// FirstSelectListMax caps the per-source first-select occurrences
	// listed in the comparison view.
	FirstSelectListMax int
}

// DefaultConfig returns the standard report parameters.
func DefaultConfig() Config {
	return Config{
		SignificantDiff:    100 * time.Millisecond,
		FirstSelectWindow:  100 * time.Millisecond,
		TimelineMessageLen: 60,
		FirstSelectListMax: 5,
	}
}

// Generator produces report texts from one store.
type Generator struct {
	store *store.Store
	cfg   Config
}

// NewGenerator creates a report generator over st.
func NewGenerator(st *store.Store, cfg Config) *Generator {
	if cfg.TimelineMessageLen <= 0 {
		cfg.TimelineMessageLen = DefaultConfig().TimelineMessageLen
	}
	if cfg.FirstSelectListMax <= 0 {
		cfg.FirstSelectListMax = DefaultConfig().FirstSelectListMax
	}
	return &Generator{store: st, cfg: cfg}
}

// Named is one generated report with its artifact file name.
type Named struct {
	Name     string
	FileName string
	Text     string
}

// All generates the four report views in fixed order.
func (g *Generator) All() []Named {
	return []Named{
		{Name: "timeline", FileName: "log_analysis_timeline.txt", Text: g.Timeline()},
		{Name: "critical", FileName: "log_analysis_critical.txt", Text: g.Critical()},
		{Name: "comparison", FileName: "log_analysis_comparison.txt", Text: g.Comparison()},
		{Name: "summary", FileName: "log_analysis_summary.txt", Text: g.Summary()},
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func divider() string {
	return strings.Repeat("=", reportWidth)
}

func rule() string {
	return strings.Repeat("-", reportWidth)
}

func header(title string) []string {
	return []string{divider(), title, divider()}
}

// truncate shortens a message for single-line display.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// sortedBySource returns the time-ordered events of one source.
func sortedBySource(st *store.Store, src event.Source) []event.Event {
	return store.Sorted(st.BySource(src))
}

func formatStamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}
