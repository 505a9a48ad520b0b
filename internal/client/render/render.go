// Package render draws one static frame of the lot: zone labels, the
// road/slot graph, and the transient path overlay of the most recent
// allocation. It has no side effects beyond canvas writes.
package render

import (
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/lotops/parkview/internal/client/layout"
	"github.com/lotops/parkview/internal/models"
)

// Node glyphs. Category is carried by the box color and occupancy by the
// interior, keeping the four node states visually distinct.
const (
	RoadRune      = '·'
	EntryRune     = '►'
	OccupantRune  = '■'
	EmptySlotRune = '□'
	PathRune      = '•'
	EdgeRune      = '·'
)

// Frame palette.
var (
	ColorRoad     = termbox.ColorWhite
	ColorEntry    = termbox.ColorYellow | termbox.AttrBold
	ColorEdge     = termbox.ColorBlue
	ColorPath     = termbox.ColorYellow | termbox.AttrBold
	ColorOccupied = termbox.ColorRed | termbox.AttrBold
	ColorLabel    = termbox.ColorMagenta | termbox.AttrBold
	Background    = termbox.ColorDefault
)

// CategoryColor distinguishes slot categories independent of occupancy.
func CategoryColor(c models.Category) termbox.Attribute {
	if c == models.TwoWheeler {
		return termbox.ColorCyan
	}
	return termbox.ColorGreen
}

// Draw renders one frame in occlusion order: background, zone labels,
// connectivity edges, path overlay, then every node. A nil lot clears
// the canvas and stops; an empty path draws nothing; path segments whose
// node ids are missing from the snapshot are skipped silently.
func Draw(c Canvas, lot *models.Lot, geom *layout.Geometry, path []int) {
	c.Clear()
	if lot == nil || geom == nil {
		return
	}

	drawLabels(c, geom)
	drawEdges(c, geom, lot)
	drawPath(c, geom, path)
	drawRoads(c, geom, lot)
	drawSlots(c, geom, lot)
}

// DrawText writes a string left to right starting at (x, y).
func DrawText(c Canvas, x, y int, text string, fg, bg termbox.Attribute) {
	for _, ch := range text {
		c.SetCell(x, y, ch, fg, bg)
		x += runewidth.RuneWidth(ch)
	}
}

func drawLabels(c Canvas, geom *layout.Geometry) {
	for _, l := range geom.Labels {
		fg := CategoryColor(l.Category) | termbox.AttrBold
		if l.Vertical {
			x := round(l.At.X)
			y := round(l.At.Y) - len(l.Text)/2
			for i, ch := range l.Text {
				c.SetCell(x, y+i, ch, fg, Background)
			}
			continue
		}
		x := round(l.At.X) - runewidth.StringWidth(l.Text)/2
		DrawText(c, x, round(l.At.Y), l.Text, fg, Background)
	}
}

func drawEdges(c Canvas, geom *layout.Geometry, lot *models.Lot) {
	for _, e := range lot.Edges {
		a, okA := geom.Positions[e.Source]
		b, okB := geom.Positions[e.Target]
		if !okA || !okB {
			continue
		}
		drawLine(c, a, b, EdgeRune, ColorEdge)
	}
}

// drawPath overlays the most recent allocation route with elevated
// visual weight so it stands out against the static edges.
func drawPath(c Canvas, geom *layout.Geometry, path []int) {
	for i := 0; i+1 < len(path); i++ {
		a, okA := geom.Positions[path[i]]
		b, okB := geom.Positions[path[i+1]]
		if !okA || !okB {
			continue
		}
		drawLine(c, a, b, PathRune, ColorPath)
	}
	for _, id := range path {
		if p, ok := geom.Positions[id]; ok {
			c.SetCell(round(p.X), round(p.Y), PathRune, ColorPath, Background)
		}
	}
}

func drawRoads(c Canvas, geom *layout.Geometry, lot *models.Lot) {
	for id, r := range lot.Roads {
		p, ok := geom.Positions[id]
		if !ok {
			continue
		}
		if r.Entry {
			c.SetCell(round(p.X), round(p.Y), EntryRune, ColorEntry, Background)
			continue
		}
		c.SetCell(round(p.X), round(p.Y), RoadRune, ColorRoad, Background)
	}
}

func drawSlots(c Canvas, geom *layout.Geometry, lot *models.Lot) {
	for id, s := range lot.Slots {
		p, ok := geom.Positions[id]
		if !ok {
			continue
		}
		box := geom.SlotBoxes[id]
		drawSlot(c, p, box, s)
	}
}

// drawSlot renders one slot glyph. Boxes too small for a border collapse
// to a single cell that still encodes both category and occupancy.
func drawSlot(c Canvas, p layout.Point, box layout.Box, s *models.SlotNode) {
	w := max(1, round(box.W))
	h := max(1, round(box.H))
	catColor := CategoryColor(s.Category)

	cx, cy := round(p.X), round(p.Y)

	if w < 3 || h < 3 {
		if s.Occupied() {
			c.SetCell(cx, cy, OccupantRune, catColor|termbox.AttrBold, Background)
		} else {
			c.SetCell(cx, cy, EmptySlotRune, catColor, Background)
		}
		return
	}

	x0 := cx - w/2
	y0 := cy - h/2
	x1 := x0 + w - 1
	y1 := y0 + h - 1

	for x := x0; x <= x1; x++ {
		c.SetCell(x, y0, '─', catColor, Background)
		c.SetCell(x, y1, '─', catColor, Background)
	}
	for y := y0; y <= y1; y++ {
		c.SetCell(x0, y, '│', catColor, Background)
		c.SetCell(x1, y, '│', catColor, Background)
	}
	c.SetCell(x0, y0, '┌', catColor, Background)
	c.SetCell(x1, y0, '┐', catColor, Background)
	c.SetCell(x0, y1, '└', catColor, Background)
	c.SetCell(x1, y1, '┘', catColor, Background)

	// interior: blank while empty, occupant glyph plus a truncated id
	// label while occupied
	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			c.SetCell(x, y, ' ', termbox.ColorDefault, Background)
		}
	}
	if !s.Occupied() {
		return
	}

	c.SetCell(cx, cy, OccupantRune, ColorOccupied, Background)

	label := runewidth.Truncate(s.Occupant.VehicleID, w-2, "…")
	if label != "" && h > 3 {
		DrawText(c, x0+1, cy+1, label, ColorOccupied, Background)
	}
}

// drawLine walks a Bresenham line between two canvas points.
func drawLine(c Canvas, a, b layout.Point, ch rune, fg termbox.Attribute) {
	x0, y0 := round(a.X), round(a.Y)
	x1, y1 := round(b.X), round(b.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.SetCell(x0, y0, ch, fg, Background)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
