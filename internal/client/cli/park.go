package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/lotops/parkview/internal/models"
	"github.com/lotops/parkview/internal/validation"
	"github.com/lotops/parkview/pkg/api"
)

// RunPark requests a slot for a vehicle. When -id is omitted a short
// unique id is generated so walk-up vehicles can be admitted quickly.
func (c *Cli) RunPark(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("park", flag.ContinueOnError)
	vehicleID := fs.String("id", "", "vehicle id (generated when omitted)")
	category := fs.String("category", api.CategoryFourWheeler, "vehicle category: 2w or 4w")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *vehicleID == "" {
		*vehicleID = "v-" + uuid.NewString()[:8]
	}
	if err := validation.ValidateVehicleID(*vehicleID); err != nil {
		return err
	}
	if err := validation.ValidateCategory(*category); err != nil {
		return err
	}

	resp, err := c.ctrl.Park(ctx, *vehicleID, *category)
	detail := ""
	if resp != nil {
		detail = resp.Message
	}
	c.record(ctx, "park", *vehicleID, *category, detail, err)
	if err != nil {
		return fmt.Errorf("park %s: %w", *vehicleID, err)
	}

	c.io.Printf("✓ %s\n", resp.Message)
	c.io.Printf("  vehicle: %s (%s)\n", *vehicleID, *category)
	c.io.Printf("  slot:    %d\n", resp.SlotID)
	c.io.Printf("  route:   %s\n", formatPath(resp.Path))
	c.printAvailability()

	return nil
}

// printAvailability shows the per-category stats from the post-mutation
// snapshot when the backend provides them.
func (c *Cli) printAvailability() {
	lot, _, _ := c.ctrl.Snapshot()
	if lot == nil || lot.Stats == nil {
		return
	}
	for _, category := range []models.Category{models.TwoWheeler, models.FourWheeler} {
		if s, ok := lot.Stats.ByCategory[category]; ok {
			c.io.Printf("  %s: %d of %d available\n", category.Label(), s.Available, s.Total)
		}
	}
}
