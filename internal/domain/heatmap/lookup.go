package heatmap

import (
	"fmt"
	"strings"

	"github.com/mrnkim/creator-discovery/internal/types"
)

const (
	// wideEventRatio: an event spanning more than this share of the content is
	// treated as a low-confidence whole-video extraction.
	wideEventRatio = 0.8
	// narrowBucketRatio: a bucket much narrower than its event means the event
	// was coarsely split across buckets; play just the bucket.
	narrowBucketRatio = 0.3
	// wideEventWindowSec is the fixed window used for whole-video events,
	// centered on the clicked bucket's midpoint.
	wideEventWindowSec = 10.0
)

// MatchBrandEvents selects the events belonging to a clicked brand row.
// Exact brand-name matches win; when extraction runs drifted the labels
// (e.g. "Nike" vs "Nike Air"), fall back to a case-insensitive substring
// match against brand and product names.
func MatchBrandEvents(events []types.Event, brand string) []types.Event {
	var exact []types.Event
	for _, e := range events {
		if e.Brand == brand {
			exact = append(exact, e)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	needle := strings.ToLower(strings.TrimSpace(brand))
	if needle == "" {
		return nil
	}
	var loose []types.Event
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Brand), needle) ||
			strings.Contains(strings.ToLower(e.Product), needle) {
			loose = append(loose, e)
		}
	}
	return loose
}

// ResolveClick translates a clicked column on a brand row back into a playable
// window on the content item. events must already be the clicked brand's
// events (see MatchBrandEvents). It recomputes the same exclusive best-overlap
// assignment as BrandRows, so a click lands on exactly the event that produced
// the cell.
//
// ok is false when no event is assigned to the clicked column — a benign
// consequence of filtering or discretization, not an error. On collision the
// first event in input order wins.
func ResolveClick(events []types.Event, contentID string, duration float64, numBuckets, column int, tr Tracer) (types.PlaybackWindow, bool, error) {
	if duration <= 0 {
		trace(tr, "resolve.no_duration", map[string]any{"content": contentID})
		return types.PlaybackWindow{}, false, nil
	}
	cols, err := MaterializeGrid(numBuckets, duration)
	if err != nil {
		return types.PlaybackWindow{}, false, err
	}
	if column < 0 || column >= len(cols) {
		return types.PlaybackWindow{}, false, fmt.Errorf("column %d out of range [0,%d)", column, len(cols))
	}

	assigned := assignBuckets(events, cols)
	idx := -1
	for i, bucket := range assigned {
		if bucket == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		trace(tr, "resolve.miss", map[string]any{"content": contentID, "column": column})
		return types.PlaybackWindow{}, false, nil
	}

	ev := events[idx]
	col := cols[column]
	start, end := playbackRange(ev, col, duration)
	trace(tr, "resolve.hit", map[string]any{
		"content": contentID, "column": column, "brand": ev.Brand,
		"start": start, "end": end,
	})
	return types.PlaybackWindow{
		ContentID:   contentID,
		StartSec:    start,
		EndSec:      end,
		Brand:       ev.Brand,
		Product:     ev.Product,
		Description: ev.Description,
	}, true, nil
}

// playbackRange picks the playable window, in precedence order: a fixed short
// window for events that nominally span almost the whole item, the bucket
// bounds when the bucket is far narrower than the event, otherwise the event's
// own bounds.
func playbackRange(ev types.Event, col types.Column, duration float64) (float64, float64) {
	eventDur := ev.Duration()
	bucketDur := col.EndSec - col.StartSec

	if eventDur > wideEventRatio*duration {
		mid := (col.StartSec + col.EndSec) / 2
		start := mid - wideEventWindowSec/2
		end := mid + wideEventWindowSec/2
		if start < 0 {
			start = 0
		}
		if end > duration {
			end = duration
		}
		return start, end
	}
	if bucketDur < narrowBucketRatio*eventDur {
		return col.StartSec, col.EndSec
	}
	return ev.StartSec, ev.EndSec
}
