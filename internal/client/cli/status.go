package cli

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/lotops/parkview/internal/client/layout"
	"github.com/lotops/parkview/internal/client/render"
	"github.com/lotops/parkview/internal/models"
)

// Fallback frame size when stdout is not a terminal.
const (
	defaultFrameWidth  = 100
	defaultFrameHeight = 30
)

// RunStatus fetches the lot once and prints a static frame plus the
// occupancy summary.
func (c *Cli) RunStatus(ctx context.Context) error {
	if err := c.ctrl.Refresh(ctx); err != nil {
		return err
	}
	lot, path, _ := c.ctrl.Snapshot()

	w, h := frameSize()
	geom := layout.Compute(lot, float64(w), float64(h))
	buf := render.NewCellBuffer(w, h)
	render.Draw(buf, lot, geom, path)

	c.io.Printf("%s", buf.String())
	c.printStatsSummary(lot)

	return nil
}

func (c *Cli) printStatsSummary(lot *models.Lot) {
	if lot == nil {
		return
	}
	if lot.Stats == nil {
		// stats are optional decoration; never synthesize zeros
		c.io.Println("occupancy stats unavailable")
		return
	}
	for _, category := range []models.Category{models.TwoWheeler, models.FourWheeler} {
		if s, ok := lot.Stats.ByCategory[category]; ok {
			c.io.Printf("%s: %d of %d available\n", category.Label(), s.Available, s.Total)
		}
	}
}

// frameSize probes the terminal, falling back to a fixed size when
// stdout is redirected.
func frameSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultFrameWidth, defaultFrameHeight
	}
	// leave room for the summary lines below the frame
	if h > 8 {
		h -= 4
	}
	return w, h
}
