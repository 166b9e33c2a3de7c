// Package ingest normalizes the loosely-typed payloads returned by the
// analysis and metadata services into the strict shapes the heatmap core
// consumes. All coercion of malformed data happens here, on purpose: the
// aggregators never special-case "maybe this string is JSON".
package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrnkim/creator-discovery/internal/types"
)

// UnknownLabel substitutes for labels that arrive missing or non-string.
const UnknownLabel = "Unknown"

// RawMention is one brand mention as the analysis service returns it. The
// service is language-model-backed, so field types drift: bounds arrive as
// numbers or numeric strings, brand names are occasionally JSON-encoded
// strings, labels go missing entirely.
type RawMention struct {
	Brand       any `json:"brand"`
	Product     any `json:"product"`
	Start       any `json:"start"`
	End         any `json:"end"`
	Description any `json:"description"`
	Location    any `json:"location"`
}

// NormalizeMentions coerces raw mentions into Events for one content item.
// Missing or invalid bounds collapse to a zero-length interval at 0; inverted
// bounds collapse to a zero-length interval at the start; missing labels
// become UnknownLabel. Nothing here errors: a bad mention degrades, it never
// blocks the rest of the matrix.
func NormalizeMentions(contentID string, raw []RawMention) []types.Event {
	out := make([]types.Event, 0, len(raw))
	for _, r := range raw {
		start := coerceSeconds(r.Start)
		end := coerceSeconds(r.End)
		if start < 0 {
			start = 0
		}
		if end < start {
			end = start
		}
		out = append(out, types.Event{
			ContentID:   contentID,
			Brand:       coerceLabel(r.Brand),
			Product:     coerceOptionalLabel(r.Product),
			StartSec:    start,
			EndSec:      end,
			Description: coerceOptionalLabel(r.Description),
			Location:    coerceOptionalLabel(r.Location),
		})
	}
	return out
}

// RawContent is one content item as the metadata service returns it: an id, a
// display name, and a dynamic key/value tag map that may or may not carry a
// usable duration.
type RawContent struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Tags map[string]any `json:"tags"`
}

// tag keys checked for a duration, in order.
var durationTagKeys = []string{"duration", "duration_sec", "length_sec"}

// NormalizeContent maps raw content metadata to ContentMeta. A missing or
// unparseable duration becomes 0; the core then renders that item as an empty
// row instead of failing.
func NormalizeContent(raw RawContent) types.ContentMeta {
	label := strings.TrimSpace(raw.Name)
	if label == "" {
		label = raw.ID
	}
	meta := types.ContentMeta{ID: raw.ID, Label: label}
	for _, key := range durationTagKeys {
		if v, ok := raw.Tags[key]; ok {
			if sec := coerceSeconds(v); sec > 0 {
				meta.DurationSec = sec
				break
			}
		}
	}
	return meta
}

// coerceSeconds accepts the numeric shapes seen in the wild: JSON numbers,
// integers, and numeric strings. Anything else is 0.
func coerceSeconds(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// coerceLabel returns a clean display string, decoding the occasional
// JSON-encoded string ("\"Nike\"") the extraction model emits.
func coerceLabel(v any) string {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return UnknownLabel
		}
		// numbers and other scalars still render as something readable
		if num := coerceSeconds(v); num != 0 {
			return fmt.Sprintf("%v", v)
		}
		return UnknownLabel
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		var decoded string
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			s = strings.TrimSpace(decoded)
		}
	}
	if s == "" {
		return UnknownLabel
	}
	return s
}

// coerceOptionalLabel is coerceLabel for fields where absence is fine.
func coerceOptionalLabel(v any) string {
	if v == nil {
		return ""
	}
	s := coerceLabel(v)
	if s == UnknownLabel {
		return ""
	}
	return s
}
