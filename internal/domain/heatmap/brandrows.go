package heatmap

import (
	"sort"

	"github.com/mrnkim/creator-discovery/internal/types"
)

// BrandRows buckets one content item's events into one row per brand.
//
// Each event is exclusively assigned to its single best-overlap bucket (ties
// keep the lowest index). A bucket holding exactly one event carries that
// event's duration in seconds. When several events land in the same bucket the
// cell switches unit and carries the event COUNT instead: the exclusive
// assignment could not separate closely spaced mentions, and the count signals
// density where a summed duration would be misread as one long mention. Do not
// "fix" this by summing.
//
// Rows come back sorted by total exposure, most-exposed brand first. A
// duration <= 0 yields no rows: there is no timeline to bucket onto.
func BrandRows(events []types.Event, duration float64, numBuckets int, tr Tracer) ([]types.Row, error) {
	if duration <= 0 {
		trace(tr, "brand_rows.no_duration", map[string]any{"events": len(events)})
		return nil, nil
	}
	cols, err := MaterializeGrid(numBuckets, duration)
	if err != nil {
		return nil, err
	}

	byBrand := groupByBrand(events)
	rows := make([]types.Row, 0, len(byBrand.order))
	for _, brand := range byBrand.order {
		evs := byBrand.groups[brand]
		assigned := assignBuckets(evs, cols)

		cells := make([]types.Cell, numBuckets)
		counts := make([]int, numBuckets)
		for i, bucket := range assigned {
			if bucket < 0 {
				continue
			}
			counts[bucket]++
			switch counts[bucket] {
			case 1:
				cells[bucket].Value = evs[i].Duration()
			case 2:
				// Collision: switch from seconds to event count.
				cells[bucket].Value = 2
				trace(tr, "brand_rows.collision", map[string]any{"brand": brand, "bucket": bucket})
			default:
				cells[bucket].Value = float64(counts[bucket])
			}
		}
		rows = append(rows, types.Row{
			ID:              brand,
			Label:           brand,
			Cells:           cells,
			ContentDuration: duration,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total() > rows[j].Total() })
	trace(tr, "brand_rows.done", map[string]any{"rows": len(rows), "buckets": numBuckets})
	return rows, nil
}

// assignBuckets maps each event to the index of its maximal-overlap bucket, or
// -1 when the event has zero overlap with every bucket. Ties keep the first
// (lowest-index) bucket.
func assignBuckets(events []types.Event, cols []types.Column) []int {
	out := make([]int, len(events))
	for i, e := range events {
		best := -1
		bestOverlap := 0.0
		for c, col := range cols {
			ov := Overlap(e.StartSec, e.EndSec, col.StartSec, col.EndSec)
			if ov > bestOverlap {
				best = c
				bestOverlap = ov
			}
		}
		out[i] = best
	}
	return out
}

// brandGroups keeps grouped events plus first-seen brand order so output is
// deterministic before the exposure sort.
type brandGroups struct {
	order  []string
	groups map[string][]types.Event
}

func groupByBrand(events []types.Event) brandGroups {
	g := brandGroups{groups: make(map[string][]types.Event)}
	for _, e := range events {
		if _, ok := g.groups[e.Brand]; !ok {
			g.order = append(g.order, e.Brand)
		}
		g.groups[e.Brand] = append(g.groups[e.Brand], e)
	}
	return g
}
