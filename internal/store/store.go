// Package store accumulates classified events for a single analysis run.
//
// The store is append-only and exclusively owned by the ingestion phase;
// report generation reads it without mutation. Ordering helpers return
// copies so derived views never disturb insertion order.
package store

import (
	"sort"
	"time"

	"github.com/jittakal/logdiag/pkg/event"
)

// Store holds the full event collection plus per-source partitions.
type Store struct {
	events   []event.Event
	bySource map[event.Source][]event.Event
}

// New creates an empty store.
func New() *Store {
	return &Store{
		bySource: make(map[event.Source][]event.Event, len(event.KnownSources)),
	}
}

// Append adds one event to the full collection and its source partition.
func (s *Store) Append(e event.Event) {
	s.events = append(s.events, e)
	s.bySource[e.Source] = append(s.bySource[e.Source], e)
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}

// Events returns all stored events in insertion order. The returned slice
// is shared; callers must not modify it.
func (s *Store) Events() []event.Event {
	return s.events
}

// BySource returns the events attributed to one source, in insertion order.
func (s *Store) BySource(src event.Source) []event.Event {
	return s.bySource[src]
}

// Counts returns per-source, per-category event counts.
func (s *Store) Counts() map[event.Source]map[event.Category]int {
	counts := make(map[event.Source]map[event.Category]int, len(s.bySource))
	for src, events := range s.bySource {
		c := make(map[event.Category]int)
		for _, e := range events {
			c[e.Category]++
		}
		counts[src] = c
	}
	return counts
}

// Baseline returns the earliest timestamp across all stored events.
func (s *Store) Baseline() (time.Time, bool) {
	return MinTimestamp(s.events)
}

// Sorted returns a copy of events stably sorted by timestamp, ascending.
func Sorted(events []event.Event) []event.Event {
	out := make([]event.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// MinTimestamp returns the earliest timestamp in events, if any.
func MinTimestamp(events []event.Event) (time.Time, bool) {
	if len(events) == 0 {
		return time.Time{}, false
	}
	min := events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp.Before(min) {
			min = e.Timestamp
		}
	}
	return min, true
}

// OfCategory returns the subset of events with the given category,
// preserving order.
func OfCategory(events []event.Event, cat event.Category) []event.Event {
	var out []event.Event
	for _, e := range events {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns the subset of events for which keep returns true,
// preserving order.
func Filter(events []event.Event, keep func(event.Event) bool) []event.Event {
	var out []event.Event
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// WindowIndex assigns a timestamp to a fixed 1-second half-open window
// anchored at the given baseline: index = floor of elapsed whole seconds.
// Integer Duration division avoids float rounding at window edges.
func WindowIndex(anchor, t time.Time) int {
	return int(t.Sub(anchor) / time.Second)
}

// Window is one 1-second bucket of events.
type Window struct {
	Index  int
	Events []event.Event
}

// Windows groups events into 1-second windows anchored at the minimum
// timestamp of the set. Windows are returned in ascending index order with
// their events sorted by timestamp; empty windows are not materialized.
func Windows(events []event.Event) []Window {
	anchor, ok := MinTimestamp(events)
	if !ok {
		return nil
	}

	buckets := make(map[int][]event.Event)
	for _, e := range Sorted(events) {
		idx := WindowIndex(anchor, e.Timestamp)
		buckets[idx] = append(buckets[idx], e)
	}

	indexes := make([]int, 0, len(buckets))
	for idx := range buckets {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	windows := make([]Window, 0, len(indexes))
	for _, idx := range indexes {
		windows = append(windows, Window{Index: idx, Events: buckets[idx]})
	}
	return windows
}
