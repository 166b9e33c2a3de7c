package heatmap

// Overlap returns the overlap length between two closed-open intervals on a
// shared axis, in the axis unit. Degenerate intervals (end < start) behave as
// zero-length intervals; the result is never negative.
func Overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
