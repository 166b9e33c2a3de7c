package heatmap

import (
	"math"
	"testing"
)

func TestGrid_CoversPercentAxis(t *testing.T) {
	for _, n := range []int{1, 3, 10, 50, 97} {
		cols, err := Grid(n)
		if err != nil {
			t.Fatalf("Grid(%d): %v", n, err)
		}
		if len(cols) != n {
			t.Fatalf("Grid(%d) returned %d columns", n, len(cols))
		}
		if cols[0].StartPct != 0 {
			t.Fatalf("Grid(%d) first column starts at %v", n, cols[0].StartPct)
		}
		if math.Abs(cols[n-1].EndPct-100) > 1e-9 {
			t.Fatalf("Grid(%d) last column ends at %v", n, cols[n-1].EndPct)
		}
		for i := 1; i < n; i++ {
			if cols[i].StartPct != cols[i-1].EndPct {
				t.Fatalf("Grid(%d) gap between column %d and %d: %v != %v",
					n, i-1, i, cols[i-1].EndPct, cols[i].StartPct)
			}
			if cols[i].EndPct <= cols[i].StartPct {
				t.Fatalf("Grid(%d) column %d not increasing", n, i)
			}
		}
	}
}

func TestGrid_RejectsNonPositiveBuckets(t *testing.T) {
	for _, n := range []int{0, -1, -50} {
		if _, err := Grid(n); err == nil {
			t.Fatalf("Grid(%d): expected error", n)
		}
	}
}

func TestMaterializeGrid_Seconds(t *testing.T) {
	cols, err := MaterializeGrid(10, 100)
	if err != nil {
		t.Fatalf("MaterializeGrid: %v", err)
	}
	if cols[2].StartSec != 20 || cols[2].EndSec != 30 {
		t.Fatalf("unexpected bucket 2 bounds: [%v, %v)", cols[2].StartSec, cols[2].EndSec)
	}
	if cols[9].EndSec != 100 {
		t.Fatalf("last bucket ends at %v, want 100", cols[9].EndSec)
	}
}
