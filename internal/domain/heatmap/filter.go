package heatmap

import (
	"strings"

	"github.com/mrnkim/creator-discovery/internal/types"
)

// Filter is the pre-aggregation event filter supplied by the caller (UI
// selection state). Zero values mean "no constraint". Filtering always happens
// before events reach an aggregator, never inside one.
type Filter struct {
	// Brands is an allow-list of brand names; empty keeps every brand.
	Brands []string
	// MinDurationSec drops events shorter than this.
	MinDurationSec float64
	// FromSec/ToSec keep only events overlapping the [FromSec, ToSec) window.
	// ToSec <= 0 means no upper bound.
	FromSec float64
	ToSec   float64
}

// FilterEvents applies f to events, preserving input order.
func FilterEvents(events []types.Event, f Filter) []types.Event {
	allow := make(map[string]struct{}, len(f.Brands))
	for _, b := range f.Brands {
		allow[strings.ToLower(strings.TrimSpace(b))] = struct{}{}
	}

	var out []types.Event
	for _, e := range events {
		if len(allow) > 0 {
			if _, ok := allow[strings.ToLower(e.Brand)]; !ok {
				continue
			}
		}
		if e.Duration() < f.MinDurationSec {
			continue
		}
		if !inWindow(e, f.FromSec, f.ToSec) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// inWindow reports whether e overlaps the [from, to) window. to <= 0 means no
// upper bound. Zero-length events are kept when their instant falls inside.
func inWindow(e types.Event, from, to float64) bool {
	if from <= 0 && to <= 0 {
		return true
	}
	if to <= 0 {
		return e.EndSec > from || (e.Duration() == 0 && e.StartSec >= from)
	}
	if e.Duration() == 0 {
		return e.StartSec >= from && e.StartSec < to
	}
	return Overlap(e.StartSec, e.EndSec, from, to) > 0
}
