// Package cli implements the operator commands: park, leave, configure,
// status, watch and history.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lotops/parkview/internal/client/controller"
	"github.com/lotops/parkview/internal/client/history/sqlite"
	"github.com/lotops/parkview/internal/client/iocli"
)

// HistoryStore records issued commands and lists them back.
type HistoryStore interface {
	Record(ctx context.Context, e sqlite.Entry) error
	Recent(ctx context.Context, limit int) ([]sqlite.Entry, error)
}

// Cli wires the command runners to their collaborators. history may be
// nil when the local log is unavailable.
type Cli struct {
	ctrl    *controller.Controller
	history HistoryStore
	io      iocli.IO
	logger  *slog.Logger
}

// New creates the command dispatcher.
func New(ctrl *controller.Controller, history HistoryStore, io iocli.IO, logger *slog.Logger) *Cli {
	return &Cli{
		ctrl:    ctrl,
		history: history,
		io:      io,
		logger:  logger,
	}
}

// record logs an issued command attempt to the local history. Failures
// to record never fail the command itself.
func (c *Cli) record(ctx context.Context, op, vehicleID, category string, detail string, cmdErr error) {
	if c.history == nil {
		return
	}
	outcome := sqlite.OutcomeOK
	if cmdErr != nil {
		outcome = sqlite.OutcomeError
		detail = cmdErr.Error()
	}
	entry := sqlite.Entry{
		Op:        op,
		VehicleID: vehicleID,
		Category:  category,
		Outcome:   outcome,
		Detail:    detail,
	}
	if err := c.history.Record(ctx, entry); err != nil {
		c.logger.Warn("failed to record command history", "op", op, "error", err)
	}
}

// formatPath renders a route as "0 -> 3 -> 7".
func formatPath(path []int) string {
	if len(path) == 0 {
		return "(no route)"
	}
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, " -> ")
}

// PrintUsage prints the command overview.
func PrintUsage() {
	fmt.Println("parkview - operator client for the parking allocation service")
	fmt.Println()
	fmt.Println("Usage: parkview [global flags] <command> [command flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  park       request a slot for a vehicle (-id, -category 2w|4w)")
	fmt.Println("  leave      release a vehicle's slot (-id)")
	fmt.Println("  configure  regenerate the lot grid (-2w-top, -2w-bottom, -4w-rows, -cols, -4w-cols)")
	fmt.Println("  status     fetch the lot once and print it")
	fmt.Println("  watch      live terminal view with background polling")
	fmt.Println("  history    list recently issued commands (-limit)")
	fmt.Println()
	fmt.Println("Global flags:")
	fmt.Println("  -server    backend base URL (default http://localhost:8000, env PARKVIEW_SERVER)")
	fmt.Println("  -cache     path to the snapshot cache database")
	fmt.Println("  -history   path to the command history database")
	fmt.Println("  -interval  background poll interval (default 2s)")
}
