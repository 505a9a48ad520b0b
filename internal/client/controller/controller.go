// Package controller owns the canonical local copy of backend state.
// It runs the fixed-interval refresh loop, applies operator mutations
// with sequential request handling, and manages the lifetime of the
// transient path overlay left behind by the latest allocation.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	clientapi "github.com/lotops/parkview/internal/client/api"
	"github.com/lotops/parkview/internal/models"
	"github.com/lotops/parkview/pkg/api"
)

// DefaultPollInterval is the background refresh period.
const DefaultPollInterval = 2 * time.Second

// ErrMutationInFlight is returned when a park/leave/configure is
// attempted while another mutation has not completed yet. Mutations are
// never queued; the caller must resubmit.
var ErrMutationInFlight = errors.New("another command is still in flight")

// SnapshotCache persists the last successfully fetched snapshot so a new
// session can show something before its first poll completes.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, resp *api.StatusResponse, fetchedAt time.Time) error
	LoadSnapshot(ctx context.Context) (*api.StatusResponse, time.Time, error)
}

// Controller reconciles the local view with the backend. The snapshot
// and the path overlay are each one cell, replaced wholesale under the
// mutex; readers never observe a partial update.
type Controller struct {
	client   clientapi.ClientAPI
	cache    SnapshotCache // optional
	logger   *slog.Logger
	interval time.Duration

	mu       sync.Mutex
	lot      *models.Lot
	path     []int
	stale    bool
	mutating bool

	notify chan struct{}
}

// New creates a controller. cache may be nil. A non-positive interval
// means DefaultPollInterval.
func New(client clientapi.ClientAPI, cache SnapshotCache, logger *slog.Logger, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Controller{
		client:   client,
		cache:    cache,
		logger:   logger,
		interval: interval,
		notify:   make(chan struct{}, 1),
	}
}

// Snapshot returns the current lot (nil before the first refresh), the
// transient path overlay, and whether the view is stale (the last
// background refresh failed).
func (c *Controller) Snapshot() (lot *models.Lot, path []int, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lot, c.path, c.stale
}

// Notify signals after every state change; the channel has capacity one,
// coalescing bursts into a single redraw.
func (c *Controller) Notify() <-chan struct{} {
	return c.notify
}

func (c *Controller) signal() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// SeedFromCache loads the last persisted snapshot, marked stale since it
// predates this session's first poll. Missing or broken cache entries
// are not an error.
func (c *Controller) SeedFromCache(ctx context.Context) {
	if c.cache == nil {
		return
	}
	resp, fetchedAt, err := c.cache.LoadSnapshot(ctx)
	if err != nil || resp == nil {
		c.logger.Debug("no cached snapshot to seed from", "error", err)
		return
	}
	lot := models.FromWire(resp)

	c.mu.Lock()
	if c.lot == nil {
		c.lot = lot
		c.stale = true
	}
	c.mu.Unlock()

	c.logger.Info("seeded view from cached snapshot", "fetched_at", fetchedAt)
	c.signal()
}

// Run polls the backend until ctx is canceled. The ticker is owned here
// and released on return, so leaving the view stops all background work.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	_ = c.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}

// Refresh fetches the full state once and swaps the snapshot wholesale.
// On failure the previous snapshot is retained and the view degrades to
// the stale indicator; polling is unaffected.
func (c *Controller) Refresh(ctx context.Context) error {
	resp, err := c.client.FetchState(ctx)
	if err != nil {
		c.logger.Warn("state refresh failed, keeping previous snapshot", "error", err)
		c.mu.Lock()
		c.stale = true
		c.mu.Unlock()
		c.signal()
		return err
	}

	lot := models.FromWire(resp)

	c.mu.Lock()
	c.lot = lot
	c.stale = false
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.SaveSnapshot(ctx, resp, time.Now()); err != nil {
			c.logger.Warn("failed to cache snapshot", "error", err)
		}
	}

	c.signal()
	return nil
}

// beginMutation rejects overlapping mutations and clears the path
// overlay before the request goes out. Background refreshes keep running
// during a mutation; they never carry path information.
func (c *Controller) beginMutation() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mutating {
		return ErrMutationInFlight
	}
	c.mutating = true
	c.path = nil
	return nil
}

// endMutation runs the forced post-mutation refresh. It is guaranteed to
// execute after the mutation's response has been received, so the
// snapshot it installs is at least as fresh as any concurrent poll.
func (c *Controller) endMutation(ctx context.Context) {
	_ = c.Refresh(ctx)

	c.mu.Lock()
	c.mutating = false
	c.mu.Unlock()
	c.signal()
}

// Park requests a slot for the vehicle. On success the returned route
// becomes the transient path overlay.
func (c *Controller) Park(ctx context.Context, vehicleID, category string) (*api.ParkResponse, error) {
	if err := c.beginMutation(); err != nil {
		return nil, err
	}
	c.signal()
	defer c.endMutation(ctx)

	resp, err := c.client.Park(ctx, vehicleID, category)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.path = append([]int(nil), resp.Path...)
	c.mu.Unlock()

	c.logger.Info("vehicle parked", "vehicle_id", vehicleID, "slot_id", resp.SlotID)
	return resp, nil
}

// Leave releases the vehicle's slot.
func (c *Controller) Leave(ctx context.Context, vehicleID string) (*api.LeaveResponse, error) {
	if err := c.beginMutation(); err != nil {
		return nil, err
	}
	c.signal()
	defer c.endMutation(ctx)

	resp, err := c.client.Leave(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("vehicle released", "vehicle_id", vehicleID)
	return resp, nil
}

// Configure regenerates the lot grid. The backend rebuilds the whole
// graph, so the forced refresh discards every prior node.
func (c *Controller) Configure(ctx context.Context, cfg api.ConfigureRequest) (*api.ConfigureResponse, error) {
	if err := c.beginMutation(); err != nil {
		return nil, err
	}
	c.signal()
	defer c.endMutation(ctx)

	resp, err := c.client.Configure(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c.logger.Info("grid reconfigured", "rows", resp.Rows, "cols", resp.Cols)
	return resp, nil
}
