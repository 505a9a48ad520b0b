package cli

import (
	"context"
	"flag"
	"fmt"
)

// RunHistory lists recently issued commands from the local log.
func (c *Cli) RunHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum entries to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.history == nil {
		return fmt.Errorf("command history is not available")
	}

	entries, err := c.history.Recent(ctx, *limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		c.io.Println("no commands recorded yet")
		return nil
	}

	for _, e := range entries {
		vehicle := e.VehicleID
		if vehicle == "" {
			vehicle = "-"
		}
		category := e.Category
		if category == "" {
			category = "-"
		}
		c.io.Printf("%s  %-9s %-12s %-3s %-5s %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Op, vehicle, category, e.Outcome, e.Detail)
	}

	return nil
}
