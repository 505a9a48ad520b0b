package cli

import (
	"context"
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/lotops/parkview/internal/client/layout"
	"github.com/lotops/parkview/internal/client/render"
	"github.com/lotops/parkview/internal/models"
)

// RunWatch runs the live view: background polling plus redraw on every
// state change. Returning releases the poll timer and the terminal.
func (c *Cli) RunWatch(ctx context.Context) error {
	screen, err := render.OpenScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer screen.Interrupt() // unblock the pending PollEvent on exit

	c.ctrl.SeedFromCache(ctx)
	go c.ctrl.Run(ctx)

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
			if ev.Type == termbox.EventInterrupt {
				return
			}
		}
	}()

	showStats := true
	c.drawWatchFrame(screen, showStats)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.ctrl.Notify():
			c.drawWatchFrame(screen, showStats)
		case ev := <-events:
			switch {
			case ev.Type == termbox.EventResize:
				c.drawWatchFrame(screen, showStats)
			case ev.Type == termbox.EventKey && (ev.Ch == 'q' || ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC):
				return nil
			case ev.Type == termbox.EventKey && ev.Ch == 's':
				// presentation-only toggle, no backend interaction
				showStats = !showStats
				c.drawWatchFrame(screen, showStats)
			}
		}
	}
}

func (c *Cli) drawWatchFrame(screen *render.Screen, showStats bool) {
	lot, path, stale := c.ctrl.Snapshot()
	w, h := screen.Size()

	geom := layout.Compute(orEmpty(lot), float64(w), float64(h))
	render.Draw(screen, lot, geom, path)

	header := "parkview  [LIVE]"
	headerColor := termbox.ColorGreen | termbox.AttrBold
	switch {
	case lot == nil:
		header = "parkview  [CONNECTING…]"
		headerColor = termbox.ColorYellow | termbox.AttrBold
	case stale:
		header = "parkview  [STALE — backend unreachable]"
		headerColor = termbox.ColorRed | termbox.AttrBold
	}
	render.DrawText(screen, 1, 0, header, headerColor, render.Background)
	render.DrawText(screen, w-24, 0, "q quit  s toggle stats", termbox.ColorWhite, render.Background)

	if showStats {
		render.DrawText(screen, 1, h-1, statsLine(lot), termbox.ColorWhite|termbox.AttrBold, render.Background)
	}

	screen.Flush()
}

// orEmpty keeps layout.Compute total before the first snapshot arrives.
func orEmpty(lot *models.Lot) *models.Lot {
	if lot != nil {
		return lot
	}
	return &models.Lot{}
}

func statsLine(lot *models.Lot) string {
	if lot == nil {
		return "waiting for first snapshot"
	}
	if lot.Stats == nil {
		return "occupancy stats unavailable"
	}
	line := ""
	for _, category := range []models.Category{models.TwoWheeler, models.FourWheeler} {
		if s, ok := lot.Stats.ByCategory[category]; ok {
			if line != "" {
				line += "   "
			}
			line += fmt.Sprintf("%s %d/%d", category.Label(), s.Available, s.Total)
		}
	}
	if line == "" {
		return "occupancy stats unavailable"
	}
	return line
}
