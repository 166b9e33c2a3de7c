package heatmap

import (
	"fmt"

	"github.com/mrnkim/creator-discovery/internal/types"
)

// DefaultBuckets is the column count used when the caller does not pick one.
// All rows of one matrix share the same count so they stay column-comparable.
const DefaultBuckets = 50

// Grid builds numBuckets contiguous percentage-space columns jointly covering
// [0,100). Column i spans [i*width, (i+1)*width) with width = 100/numBuckets.
func Grid(numBuckets int) ([]types.Column, error) {
	if numBuckets <= 0 {
		return nil, fmt.Errorf("buckets must be > 0, got %d", numBuckets)
	}
	width := 100.0 / float64(numBuckets)
	cols := make([]types.Column, numBuckets)
	for i := range cols {
		cols[i] = types.Column{
			StartPct: float64(i) * width,
			EndPct:   float64(i+1) * width,
		}
	}
	return cols, nil
}

// MaterializeGrid builds the grid and projects each column onto a concrete
// duration, filling StartSec/EndSec.
func MaterializeGrid(numBuckets int, duration float64) ([]types.Column, error) {
	cols, err := Grid(numBuckets)
	if err != nil {
		return nil, err
	}
	for i := range cols {
		cols[i].StartSec = cols[i].StartPct / 100 * duration
		cols[i].EndSec = cols[i].EndPct / 100 * duration
	}
	return cols, nil
}
