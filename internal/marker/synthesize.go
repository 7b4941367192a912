package marker

import (
	"math"
	"strings"
)

// CheckCell is one row of a dimension's visibility/color override range. A
// nil *CheckCell means the row was entirely absent from the range.
type CheckCell struct {
	// Bool is the cell's boolean value, when the cell holds one.
	Bool *bool
	// Text is the cell's formatted text, used as a truthiness fallback
	// when Bool is absent: non-empty after trimming means visible.
	Text string
	// Color is the cell's text formatting color, when set.
	Color *RGB
}

// DimensionRows is the row-aligned raw data fetched for one dimension.
// Row i of Names corresponds to row i of Positions and, when Checks is
// non-nil, row i of Checks.
type DimensionRows struct {
	// ID is the dimension id stamped on every marker.
	ID int
	// Names holds one display name per row.
	Names []string
	// Positions holds one coordinate triple per row; a nil entry marks a
	// row whose mandatory coordinates were missing or unparseable.
	Positions []*[3]float64
	// Checks is the optional override set. A nil slice means no override
	// range was configured and every row is visible with a derived color.
	Checks []*CheckCell
}

// Synthesize reconciles the fetched rows of each dimension into the final
// marker list. Markers appear in dimension order, then row order; rows
// beyond the shortest aligned set are ignored, and no deduplication is
// performed across dimensions.
func Synthesize(dims []DimensionRows) []PlayerMarker {
	var markers []PlayerMarker
	for _, dim := range dims {
		n := len(dim.Names)
		if len(dim.Positions) < n {
			n = len(dim.Positions)
		}
		if dim.Checks != nil && len(dim.Checks) < n {
			n = len(dim.Checks)
		}

		for i := 0; i < n; i++ {
			pos := dim.Positions[i]
			if pos == nil {
				continue
			}

			visible := true
			explicitColor := ""
			if dim.Checks != nil {
				cell := dim.Checks[i]
				if cell == nil {
					visible = false
				} else {
					if cell.Bool != nil {
						visible = *cell.Bool
					} else {
						visible = strings.TrimSpace(cell.Text) != ""
					}
					if cell.Color != nil {
						explicitColor = cell.Color.Hex()
					}
				}
			}

			m := PlayerMarker{
				Name:        dim.Names[i],
				DimensionID: dim.ID,
				Position:    [3]float64{centerBlock(pos[0]), pos[1], centerBlock(pos[2])},
				Visible:     visible,
			}
			m.DeriveUUID()
			m.ApplyColor(explicitColor)
			markers = append(markers, m)
		}
	}
	return markers
}

// centerBlock offsets an integral grid coordinate to the center of its
// cell; sub-cell values pass through unchanged.
func centerBlock(v float64) float64 {
	if v == math.Trunc(v) {
		return v + 0.5
	}
	return v
}
