package report

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jittakal/logdiag/internal/analyzer"
	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
)

var base = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func newEvent(offset time.Duration, src event.Source, cat event.Category, msg string) event.Event {
	return event.Event{
		Timestamp: base.Add(offset),
		Source:    src,
		Category:  cat,
		Message:   msg,
	}
}

func populatedStore() *store.Store {
	st := store.New()
	st.Append(newEvent(0, event.SourceUniPlaySong, event.CategoryAppStarted, "OnApplicationStarted Mode: Desktop"))
	st.Append(newEvent(50*time.Millisecond, event.SourceUniPlaySong, event.CategoryGameSelected, "OnGameSelected Game: Celeste, SkipMusic: false"))
	st.Append(newEvent(80*time.Millisecond, event.SourceUniPlaySong, event.CategoryFirstSelect, "_firstSelect set to false"))
	st.Append(newEvent(300*time.Millisecond, event.SourceUniPlaySong, event.CategoryVideoPlaying, "VideoIsPlaying: changing from false to true"))
	st.Append(newEvent(400*time.Millisecond, event.SourcePlayniteSound, event.CategoryGameSelected, "OnGameSelected Game: Celeste"))
	st.Append(newEvent(1200*time.Millisecond, event.SourcePlayniteSound, event.CategoryVideoPlaying, "VideoIsPlaying: true"))
	return st
}

func TestAllProducesFourNamedReports(t *testing.T) {
	g := NewGenerator(populatedStore(), DefaultConfig())

	reports := g.All()
	if len(reports) != 4 {
		t.Fatalf("All() = %d reports, want 4", len(reports))
	}

	wantFiles := map[string]string{
		"timeline":   "log_analysis_timeline.txt",
		"critical":   "log_analysis_critical.txt",
		"comparison": "log_analysis_comparison.txt",
		"summary":    "log_analysis_summary.txt",
	}
	for _, r := range reports {
		if wantFiles[r.Name] != r.FileName {
			t.Errorf("report %q has file name %q, want %q", r.Name, r.FileName, wantFiles[r.Name])
		}
		if r.Text == "" {
			t.Errorf("report %q is empty", r.Name)
		}
	}
}

func TestTimelineEmptyStore(t *testing.T) {
	g := NewGenerator(store.New(), DefaultConfig())
	if got := g.Timeline(); got != "No events to report." {
		t.Errorf("Timeline() over empty store = %q", got)
	}
	if got := g.Summary(); got != "No events to report." {
		t.Errorf("Summary() over empty store = %q", got)
	}
	if got := g.Critical(); got != "No critical events to report." {
		t.Errorf("Critical() over empty store = %q", got)
	}
}

func TestTimelineContent(t *testing.T) {
	g := NewGenerator(populatedStore(), DefaultConfig())
	text := g.Timeline()

	for _, want := range []string{
		"TIMELINE COMPARISON REPORT",
		"Baseline timestamp: 2024-01-15 10:30:00.000",
		"Total events: 6",
		"UniPlaySong events: 4",
		"PlayniteSound events: 2",
		"--- Time Window: +0s to +1s ---",
		"--- Time Window: +1s to +2s ---",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Timeline() missing %q", want)
		}
	}

	// The first line of the first window is the baseline event at 0ms.
	if !strings.Contains(text, "[     0.0ms] [UniPlaySong    ] OnApplicationStarted") {
		t.Errorf("Timeline() missing formatted baseline line:\n%s", text)
	}
}

func TestTimelineTruncatesMessages(t *testing.T) {
	st := store.New()
	long := strings.Repeat("x", 200)
	st.Append(newEvent(0, event.SourceUniPlaySong, event.CategoryOther, long))

	g := NewGenerator(st, DefaultConfig())
	text := g.Timeline()

	if strings.Contains(text, long) {
		t.Error("Timeline() must truncate long messages")
	}
	if !strings.Contains(text, strings.Repeat("x", 60)) {
		t.Error("Timeline() should keep the first 60 characters")
	}
}

func TestCriticalGroupsBySource(t *testing.T) {
	g := NewGenerator(populatedStore(), DefaultConfig())
	text := g.Critical()

	if !strings.Contains(text, "CRITICAL EVENTS ANALYSIS") {
		t.Error("Critical() missing title")
	}
	// All six seeded events are critical categories.
	if !strings.Contains(text, "Found 6 critical events") {
		t.Errorf("Critical() wrong count:\n%s", text)
	}
	upsIdx := strings.Index(text, "UniPlaySong Critical Events:")
	psIdx := strings.Index(text, "PlayniteSound Critical Events:")
	if upsIdx < 0 || psIdx < 0 || upsIdx > psIdx {
		t.Error("Critical() must list UniPlaySong before PlayniteSound")
	}
	if !strings.Contains(text, "  Message: OnGameSelected Game: Celeste, SkipMusic: false") {
		t.Error("Critical() missing event message line")
	}
}

func TestCriticalSkipsNonCritical(t *testing.T) {
	st := store.New()
	st.Append(newEvent(0, event.SourceUniPlaySong, event.CategoryOther, "noise"))
	st.Append(newEvent(0, event.SourceUniPlaySong, event.CategoryMediaMonitor, "tick"))

	g := NewGenerator(st, DefaultConfig())
	if got := g.Critical(); got != "No critical events to report." {
		t.Errorf("Critical() = %q, want no-critical text", got)
	}
}

func TestComparisonTimingFlag(t *testing.T) {
	// Seeded first selections are 350ms apart, beyond the 100ms threshold.
	g := NewGenerator(populatedStore(), DefaultConfig())
	text := g.Comparison()

	for _, want := range []string{
		"SIDE-BY-SIDE COMPARISON",
		"OnGameSelected Events:",
		"  UniPlaySong: 1",
		"  PlayniteSound: 1",
		"First OnGameSelected Comparison:",
		"Time difference: -350.0ms",
		"WARNING: Significant timing difference (>100ms)!",
		"VideoIsPlaying Changes:",
		"First VideoIsPlaying Change:",
		"_firstSelect State Changes:",
		"UniPlaySong _firstSelect changes:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Comparison() missing %q:\n%s", want, text)
		}
	}
}

func TestComparisonNoFlagWithinThreshold(t *testing.T) {
	st := store.New()
	st.Append(newEvent(0, event.SourceUniPlaySong, event.CategoryGameSelected, "OnGameSelected Game: A"))
	st.Append(newEvent(40*time.Millisecond, event.SourcePlayniteSound, event.CategoryGameSelected, "OnGameSelected Game: A"))

	g := NewGenerator(st, DefaultConfig())
	text := g.Comparison()

	if !strings.Contains(text, "Time difference: -40.0ms") {
		t.Errorf("Comparison() missing time difference:\n%s", text)
	}
	if strings.Contains(text, "Significant timing difference") {
		t.Error("Comparison() must not flag a difference within the threshold")
	}
}

func TestComparisonFirstSelectListCap(t *testing.T) {
	st := store.New()
	for i := 0; i < 8; i++ {
		st.Append(newEvent(time.Duration(i)*time.Millisecond,
			event.SourceUniPlaySong, event.CategoryFirstSelect, "_firstSelect tick"))
	}

	g := NewGenerator(st, DefaultConfig())
	text := g.Comparison()

	if !strings.Contains(text, "  UniPlaySong: 8") {
		t.Errorf("Comparison() missing total count:\n%s", text)
	}
	if got := strings.Count(text, "_firstSelect tick"); got != 5 {
		t.Errorf("Comparison() listed %d transitions, want 5", got)
	}
}

func TestReportsFromRawLines(t *testing.T) {
	// Full pipeline: raw text through the analyzer into the reports.
	st := store.New()
	a := analyzer.New(st, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	inputs := []analyzer.Input{{
		Origin: "extensions.log",
		Lines: []string{
			"2024-01-01 10:00:00.000 | INFO | UniPlaySong | OnGameSelected Game: Foo",
			"2024-01-01 10:00:00.050 | INFO | PlayniteSound | OnGameSelected Game: Foo",
		},
	}}
	if err := a.Run(context.Background(), inputs); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	g := NewGenerator(st, DefaultConfig())

	comparison := g.Comparison()
	for _, want := range []string{
		"OnGameSelected Events:",
		"  UniPlaySong: 1",
		"  PlayniteSound: 1",
		"Time difference: -50.0ms",
	} {
		if !strings.Contains(comparison, want) {
			t.Errorf("Comparison() missing %q:\n%s", want, comparison)
		}
	}
	// 50ms is inside the 100ms threshold.
	if strings.Contains(comparison, "Significant timing difference") {
		t.Errorf("Comparison() must not flag a 50ms difference:\n%s", comparison)
	}

	summary := g.Summary()
	var selectionLine string
	for _, line := range strings.Split(summary, "\n") {
		if strings.HasPrefix(line, string(event.CategoryGameSelected)) {
			selectionLine = line
		}
	}
	if selectionLine == "" {
		t.Fatalf("Summary() missing OnGameSelected count row:\n%s", summary)
	}
	fields := strings.Fields(selectionLine)
	if len(fields) != 3 || fields[1] != "1" || fields[2] != "1" {
		t.Errorf("OnGameSelected row = %q, want counts 1 and 1 with no diff marker", selectionLine)
	}
}

func TestSummaryCountsAndDiff(t *testing.T) {
	g := NewGenerator(populatedStore(), DefaultConfig())
	text := g.Summary()

	for _, want := range []string{
		"SUMMARY REPORT",
		"Event Counts by Type:",
		"KEY FINDINGS:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Summary() missing %q", want)
		}
	}

	// OnApplicationStarted: 1 vs 0, diff (+1). OnGameSelected: 1 vs 1, no diff.
	if !strings.Contains(text, "(+1)") {
		t.Errorf("Summary() missing positive diff marker:\n%s", text)
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, string(event.CategoryGameSelected)) && strings.Contains(line, "(") {
			t.Errorf("equal counts must have no diff marker: %q", line)
		}
	}

	// Categories absent from both sources are skipped.
	if strings.Contains(text, string(event.CategoryPauseMusic)) {
		t.Error("Summary() must skip categories with zero counts on both sides")
	}
}

func TestSummarySelectionBeforeVideoFinding(t *testing.T) {
	g := NewGenerator(populatedStore(), DefaultConfig())
	text := g.Summary()

	if !strings.Contains(text, "WARNING: UniPlaySong: OnGameSelected fires BEFORE VideoIsPlaying is set!") {
		t.Errorf("Summary() missing ordering warning:\n%s", text)
	}
	if !strings.Contains(text, "   Difference: 250.0ms") {
		t.Errorf("Summary() missing gap line:\n%s", text)
	}
	// Selection at +50ms, clear at +80ms: inside the 100ms window.
	if !strings.Contains(text, "OK: UniPlaySong: _firstSelect cleared immediately after OnGameSelected") {
		t.Errorf("Summary() missing first-select finding:\n%s", text)
	}
}

func TestSummaryVideoBeforeSelectionFinding(t *testing.T) {
	st := store.New()
	st.Append(newEvent(0, event.SourceUniPlaySong, event.CategoryVideoPlaying, "VideoIsPlaying: true"))
	st.Append(newEvent(time.Second, event.SourceUniPlaySong, event.CategoryGameSelected, "OnGameSelected Game: B"))
	st.Append(newEvent(2*time.Second, event.SourceUniPlaySong, event.CategoryFirstSelect, "_firstSelect set to false"))

	g := NewGenerator(st, DefaultConfig())
	text := g.Summary()

	if !strings.Contains(text, "OK: UniPlaySong: VideoIsPlaying is set before OnGameSelected") {
		t.Errorf("Summary() missing ordering OK line:\n%s", text)
	}
	// Clear lands a full second after the selection, outside the window.
	if !strings.Contains(text, "WARNING: UniPlaySong: _firstSelect clearing timing differs from OnGameSelected") {
		t.Errorf("Summary() missing first-select warning:\n%s", text)
	}
}
