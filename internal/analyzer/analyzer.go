// Package analyzer runs the line-to-event pipeline: parse, attribute,
// classify, extract, store.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jittakal/logdiag/internal/classify"
	apperrors "github.com/jittakal/logdiag/internal/errors"
	"github.com/jittakal/logdiag/internal/extract"
	"github.com/jittakal/logdiag/internal/parser"
	"github.com/jittakal/logdiag/internal/store"
	"github.com/jittakal/logdiag/pkg/event"
)

// Input is one log stream to analyze: the origin label (usually the file
// name) and its raw lines.
type Input struct {
	Origin string
	Lines  []string
}

// MetricsCollector receives pipeline counters. Implementations must be
// safe for concurrent use.
type MetricsCollector interface {
	IncLinesRead(origin string)
	IncLinesSkipped(origin, reason string)
	IncEventsStored(source, category string)
	IncEventsDropped(origin string)
	ObserveAnalyzeDuration(origin string, seconds float64)
}

// Skip reasons reported to the metrics collector.
const (
	SkipReasonFormat    = "format"
	SkipReasonTimestamp = "timestamp"
)

type noopMetrics struct{}

func (noopMetrics) IncLinesRead(string)                   {}
func (noopMetrics) IncLinesSkipped(string, string)        {}
func (noopMetrics) IncEventsStored(string, string)        {}
func (noopMetrics) IncEventsDropped(string)               {}
func (noopMetrics) ObserveAnalyzeDuration(string, float64) {}

// Analyzer feeds parsed events into a store.
type Analyzer struct {
	store   *store.Store
	logger  *slog.Logger
	metrics MetricsCollector
}

// New creates an analyzer writing to st. A nil metrics collector is
// replaced with a no-op one.
func New(st *store.Store, logger *slog.Logger, metrics MetricsCollector) *Analyzer {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Analyzer{store: st, logger: logger, metrics: metrics}
}

// Run processes every input in order. Unparseable lines and lines from
// unknown sources are skipped, never fatal. It returns ErrNoEvents when
// no input produced a single event.
func (a *Analyzer) Run(ctx context.Context, inputs []Input) error {
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.analyze(in)
	}

	if a.store.Len() == 0 {
		return apperrors.ErrNoEvents
	}
	return nil
}

func (a *Analyzer) analyze(in Input) {
	start := time.Now()
	stored, skipped, dropped := 0, 0, 0

	for _, raw := range in.Lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		a.metrics.IncLinesRead(in.Origin)

		parsed, err := parser.Parse(line)
		if err != nil {
			reason := SkipReasonFormat
			if errors.Is(err, parser.ErrBadTimestamp) {
				reason = SkipReasonTimestamp
			}
			a.metrics.IncLinesSkipped(in.Origin, reason)
			skipped++
			continue
		}

		src := classify.ResolveSource(parsed.SourceHint, parsed.Message)
		if src == event.SourceUnknown {
			a.metrics.IncEventsDropped(in.Origin)
			dropped++
			continue
		}

		e := event.Event{
			Timestamp: parsed.Timestamp,
			Source:    src,
			Category:  classify.Classify(parsed.Message),
			Message:   parsed.Message,
			RawLine:   line,
			Metadata:  extract.Extract(parsed.Message),
		}
		a.store.Append(e)
		a.metrics.IncEventsStored(string(src), string(e.Category))
		stored++
	}

	elapsed := time.Since(start)
	a.metrics.ObserveAnalyzeDuration(in.Origin, elapsed.Seconds())
	a.logger.Info("Analyzed input",
		slog.String("origin", in.Origin),
		slog.Int("stored", stored),
		slog.Int("skipped", skipped),
		slog.Int("dropped", dropped),
		slog.Duration("elapsed", elapsed))
}
