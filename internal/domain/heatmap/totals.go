package heatmap

import "github.com/mrnkim/creator-discovery/internal/types"

// TotalRowID marks the synthetic column-wise sum row. It is never a brand or
// content id, and the inverse lookup refuses to resolve clicks on it.
const TotalRowID = "__total__"

// TotalRow derives a synthetic row whose cell i is the sum of cell i across
// all displayed rows. Rows shorter than numBuckets contribute what they have;
// none should occur in practice since all rows of a matrix share the count.
func TotalRow(rows []types.Row, numBuckets int) types.Row {
	total := types.Row{
		ID:    TotalRowID,
		Label: "Total",
		Cells: make([]types.Cell, numBuckets),
	}
	for _, r := range rows {
		for i, c := range r.Cells {
			if i >= numBuckets {
				break
			}
			total.Cells[i].Value += c.Value
		}
	}
	return total
}
