package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/lotops/parkview/internal/validation"
)

// RunLeave releases the slot held by a vehicle.
func (c *Cli) RunLeave(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leave", flag.ContinueOnError)
	vehicleID := fs.String("id", "", "vehicle id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validation.ValidateVehicleID(*vehicleID); err != nil {
		return err
	}

	resp, err := c.ctrl.Leave(ctx, *vehicleID)
	detail := ""
	if resp != nil {
		detail = resp.Message
	}
	c.record(ctx, "leave", *vehicleID, "", detail, err)
	if err != nil {
		return fmt.Errorf("leave %s: %w", *vehicleID, err)
	}

	c.io.Printf("✓ %s\n", resp.Message)
	c.printAvailability()

	return nil
}
