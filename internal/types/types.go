package types

// Event is one detected brand mention: a closed-open time interval within a
// single content item. Produced by the ingestion boundary; immutable afterwards.
type Event struct {
	ContentID   string  `json:"content_id"`
	Brand       string  `json:"brand"`
	Product     string  `json:"product,omitempty"`
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// Duration returns the event length in seconds, never negative.
func (e Event) Duration() float64 {
	if e.EndSec <= e.StartSec {
		return 0
	}
	return e.EndSec - e.StartSec
}

// Column is one fixed-width slice of a normalized timeline. Percentages are
// always set; seconds are only meaningful when the grid was materialized
// against a concrete duration.
type Column struct {
	StartPct float64 `json:"start_pct"`
	EndPct   float64 `json:"end_pct"`
	StartSec float64 `json:"start_sec,omitempty"`
	EndSec   float64 `json:"end_sec,omitempty"`
}

// Cell is one bucketed intensity value. Brands is only populated by the
// library aggregator; it is kept sorted so JSON output is deterministic.
type Cell struct {
	Value  float64  `json:"value"`
	Brands []string `json:"brands,omitempty"`
}

// Row is one bucketed intensity sequence: either one brand within one content
// item, or one content item within the library. Both flavors share the shape
// so rows of one matrix stay column-comparable.
type Row struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Cells           []Cell  `json:"cells"`
	ContentDuration float64 `json:"content_duration,omitempty"`
}

// Total returns the row's total exposure: the sum of its cell values.
func (r Row) Total() float64 {
	var sum float64
	for _, c := range r.Cells {
		sum += c.Value
	}
	return sum
}

// ContentMeta is what the content metadata source knows about one item.
// DurationSec may be 0 when the source has no usable duration; aggregation
// degrades to empty rows in that case instead of failing.
type ContentMeta struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	DurationSec float64 `json:"duration_sec"`
}

// PlaybackWindow is the result of resolving a clicked heatmap cell back to a
// playable sub-range of the source content.
type PlaybackWindow struct {
	ContentID   string  `json:"content_id"`
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	Brand       string  `json:"brand"`
	Product     string  `json:"product,omitempty"`
	Description string  `json:"description,omitempty"`
}
