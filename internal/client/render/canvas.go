package render

import (
	"strings"

	"github.com/nsf/termbox-go"
)

// Canvas is the drawing surface for one frame. The live view backs it
// with the termbox screen; tests and one-shot output use CellBuffer.
type Canvas interface {
	Size() (w, h int)
	Clear()
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
}

// Cell is one canvas cell.
type Cell struct {
	Ch rune
	Fg termbox.Attribute
	Bg termbox.Attribute
}

// CellBuffer is an in-memory Canvas.
type CellBuffer struct {
	w, h  int
	cells []Cell
}

// NewCellBuffer creates a cleared w x h buffer.
func NewCellBuffer(w, h int) *CellBuffer {
	b := &CellBuffer{w: w, h: h, cells: make([]Cell, w*h)}
	b.Clear()
	return b
}

func (b *CellBuffer) Size() (int, int) { return b.w, b.h }

func (b *CellBuffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	}
}

// SetCell writes a cell; out-of-range coordinates are ignored so callers
// never need their own clipping.
func (b *CellBuffer) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	b.cells[y*b.w+x] = Cell{Ch: ch, Fg: fg, Bg: bg}
}

// At returns the cell at (x, y); out-of-range reads return a blank cell.
func (b *CellBuffer) At(x, y int) Cell {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return Cell{Ch: ' '}
	}
	return b.cells[y*b.w+x]
}

// String renders the buffer as plain text, one line per row. Attributes
// are dropped; used by the one-shot status command.
func (b *CellBuffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		line := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			line[x] = b.cells[y*b.w+x].Ch
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
