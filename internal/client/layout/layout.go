// Package layout maps the logical lot grid onto canvas coordinates.
// Compute is pure: it is re-run from scratch on every snapshot change
// and every canvas resize, nothing is cached between calls.
package layout

import (
	"github.com/lotops/parkview/internal/models"
)

// Fixed canvas margins, in canvas units. The horizontal margin holds the
// vertical four-wheeler zone label, the vertical margins hold the
// two-wheeler zone labels.
const (
	MarginX = 10.0
	MarginY = 3.0
)

// Extent floors keep a near-empty or freshly configured grid from
// collapsing into a single point (and guard the scale division).
const (
	minCols = 5
	minRows = 2
)

// Slot box sizing. The four-wheeler box fills most of one grid pitch;
// two-wheeler boxes shrink by a fixed ratio to convey footprint.
const (
	boxFillRatio          = 0.8
	twoWheelerWidthRatio  = 0.75
	twoWheelerHeightRatio = 0.85
)

// Point is a canvas position.
type Point struct {
	X float64
	Y float64
}

// Box is the rendered size of a slot glyph.
type Box struct {
	W float64
	H float64
}

// ZoneLabel is a category label placed in a margin.
type ZoneLabel struct {
	Text     string
	Category models.Category
	At       Point
	Vertical bool
}

// Geometry is the full render geometry for one (snapshot, canvas) pair.
type Geometry struct {
	Width  float64
	Height float64
	ScaleX float64
	ScaleY float64
	MaxCol int
	MaxRow int

	Positions map[int]Point // node id -> center
	SlotBoxes map[int]Box   // slot id -> glyph size
	Labels    []ZoneLabel
}

// Compute lays the lot out on a width x height canvas.
func Compute(lot *models.Lot, width, height float64) *Geometry {
	g := &Geometry{
		Width:     width,
		Height:    height,
		MaxCol:    minCols,
		MaxRow:    minRows,
		Positions: make(map[int]Point, lot.NodeCount()),
		SlotBoxes: make(map[int]Box, len(lot.Slots)),
	}

	for _, s := range lot.Slots {
		g.MaxCol = max(g.MaxCol, s.Col)
		g.MaxRow = max(g.MaxRow, s.Row)
	}
	for _, r := range lot.Roads {
		g.MaxCol = max(g.MaxCol, r.Col)
		g.MaxRow = max(g.MaxRow, r.Row)
	}

	g.ScaleX = (width - 2*MarginX) / float64(g.MaxCol)
	g.ScaleY = (height - 2*MarginY) / float64(g.MaxRow)
	if g.ScaleX < 1 {
		g.ScaleX = 1
	}
	if g.ScaleY < 1 {
		g.ScaleY = 1
	}

	fourWheelerBox := Box{W: g.ScaleX * boxFillRatio, H: g.ScaleY * boxFillRatio}
	twoWheelerBox := Box{
		W: fourWheelerBox.W * twoWheelerWidthRatio,
		H: fourWheelerBox.H * twoWheelerHeightRatio,
	}

	for id, s := range lot.Slots {
		g.Positions[id] = g.project(s.Col, s.Row)
		if s.Category == models.TwoWheeler {
			g.SlotBoxes[id] = twoWheelerBox
		} else {
			g.SlotBoxes[id] = fourWheelerBox
		}
	}
	for id, r := range lot.Roads {
		g.Positions[id] = g.project(r.Col, r.Row)
	}

	g.Labels = g.inferZoneLabels(lot)

	return g
}

func (g *Geometry) project(col, row int) Point {
	return Point{
		X: MarginX + float64(col)*g.ScaleX,
		Y: MarginY + float64(row)*g.ScaleY,
	}
}

// inferZoneLabels places category labels from node attributes alone.
// Two-wheeler zones can sit both above and below the four-wheeler block:
// a top label appears when any two-wheeler slot is on row 0 and a bottom
// label when any is on the last row. The four-wheeler label is placed
// once, vertically, centered on the mean row of its slots.
func (g *Geometry) inferZoneLabels(lot *models.Lot) []ZoneLabel {
	var labels []ZoneLabel

	twoTop, twoBottom := false, false
	fourCount, fourRowSum := 0, 0

	for _, s := range lot.Slots {
		switch s.Category {
		case models.TwoWheeler:
			if s.Row == 0 {
				twoTop = true
			}
			if s.Row == g.MaxRow {
				twoBottom = true
			}
		case models.FourWheeler:
			fourCount++
			fourRowSum += s.Row
		}
	}

	if twoTop {
		labels = append(labels, ZoneLabel{
			Text:     "TWO WHEELER ZONE",
			Category: models.TwoWheeler,
			At:       Point{X: g.Width / 2, Y: MarginY / 2},
		})
	}
	if twoBottom {
		labels = append(labels, ZoneLabel{
			Text:     "TWO WHEELER ZONE",
			Category: models.TwoWheeler,
			At:       Point{X: g.Width / 2, Y: g.Height - MarginY/2},
		})
	}
	if fourCount > 0 {
		meanRow := float64(fourRowSum) / float64(fourCount)
		labels = append(labels, ZoneLabel{
			Text:     "FOUR WHEELER ZONE",
			Category: models.FourWheeler,
			At:       Point{X: MarginX / 2, Y: MarginY + meanRow*g.ScaleY},
			Vertical: true,
		})
	}

	return labels
}
