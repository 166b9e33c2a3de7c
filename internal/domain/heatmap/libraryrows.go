package heatmap

import (
	"sort"
	"strings"

	"github.com/mrnkim/creator-discovery/internal/types"
)

// LibraryItem is one content item's worth of input to LibraryRows: its
// identity, its own duration, and its (already pre-filtered) events.
type LibraryItem struct {
	ID       string
	Label    string
	Duration float64
	Events   []types.Event
}

// LibraryRows buckets every content item into one row over that item's own
// duration, normalized to the shared percentage axis so rows of different
// absolute length stay column-comparable.
//
// Unlike BrandRows this sums overlap-seconds: a single event spanning a bucket
// boundary contributes to every bucket it touches. Each cell also collects the
// distinct brands with non-zero overlap, for tooltips and filtering. The two
// policies are deliberately different and deliberately kept apart; see
// DESIGN.md before unifying them.
//
// brands, when non-empty, is a case-insensitive allow-list applied per item.
// Items with no usable duration or no surviving events degrade to all-zero
// cells rather than failing, so one bad item never hides the rest.
func LibraryRows(items []LibraryItem, brands []string, numBuckets int, tr Tracer) ([]types.Row, error) {
	if _, err := Grid(numBuckets); err != nil {
		return nil, err
	}

	allow := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		allow[strings.ToLower(strings.TrimSpace(b))] = struct{}{}
	}

	rows := make([]types.Row, 0, len(items))
	for _, item := range items {
		row, err := libraryRow(item, allow, numBuckets, tr)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total() > rows[j].Total() })
	trace(tr, "library_rows.done", map[string]any{"rows": len(rows), "buckets": numBuckets})
	return rows, nil
}

func libraryRow(item LibraryItem, allow map[string]struct{}, numBuckets int, tr Tracer) (types.Row, error) {
	row := types.Row{
		ID:              item.ID,
		Label:           item.Label,
		Cells:           make([]types.Cell, numBuckets),
		ContentDuration: item.Duration,
	}

	events := item.Events
	if len(allow) > 0 {
		kept := events[:0:0]
		for _, e := range events {
			if _, ok := allow[strings.ToLower(e.Brand)]; ok {
				kept = append(kept, e)
			}
		}
		events = kept
	}
	if item.Duration <= 0 || len(events) == 0 {
		trace(tr, "library_rows.empty_item", map[string]any{"content": item.ID, "duration": item.Duration})
		return row, nil
	}

	cols, err := MaterializeGrid(numBuckets, item.Duration)
	if err != nil {
		return types.Row{}, err
	}

	for c, col := range cols {
		seen := map[string]struct{}{}
		for _, e := range events {
			ov := Overlap(e.StartSec, e.EndSec, col.StartSec, col.EndSec)
			if ov <= 0 {
				continue
			}
			row.Cells[c].Value += ov
			seen[e.Brand] = struct{}{}
		}
		if len(seen) > 0 {
			names := make([]string, 0, len(seen))
			for b := range seen {
				names = append(names, b)
			}
			sort.Strings(names)
			row.Cells[c].Brands = names
		}
	}
	return row, nil
}
