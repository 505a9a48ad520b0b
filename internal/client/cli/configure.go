package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/lotops/parkview/internal/validation"
	"github.com/lotops/parkview/pkg/api"
)

// RunConfigure regenerates the lot grid. The backend rebuilds the whole
// graph, so all current occupancy is discarded on success.
func (c *Cli) RunConfigure(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("configure", flag.ContinueOnError)
	twoTop := fs.Int("2w-top", 1, "two-wheeler rows above the four-wheeler block")
	twoBottom := fs.Int("2w-bottom", 1, "two-wheeler rows below the four-wheeler block")
	fourRows := fs.Int("4w-rows", 4, "four-wheeler rows")
	cols := fs.Int("cols", 19, "total columns")
	fourCols := fs.Int("4w-cols", 15, "columns of the four-wheeler block")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := api.ConfigureRequest{
		TwoWheelerRowsTop:    *twoTop,
		TwoWheelerRowsBottom: *twoBottom,
		FourWheelerRows:      *fourRows,
		TotalColumns:         *cols,
		FourWheelerColumns:   *fourCols,
	}
	if err := validation.ValidateConfiguration(cfg); err != nil {
		return err
	}

	resp, err := c.ctrl.Configure(ctx, cfg)
	detail := ""
	if resp != nil {
		detail = fmt.Sprintf("%d rows, %d cols", resp.Rows, resp.Cols)
	}
	c.record(ctx, "configure", "", "", detail, err)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}

	c.io.Printf("✓ grid reconfigured: %d rows x %d cols\n", resp.Rows, resp.Cols)
	c.printAvailability()

	return nil
}
