package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/lotops/parkview/internal/client/api"
	"github.com/lotops/parkview/internal/client/controller"
	"github.com/lotops/parkview/internal/client/history/sqlite"
	"github.com/lotops/parkview/internal/validation"
	"github.com/lotops/parkview/pkg/api"
)

type fakeIO struct {
	sb strings.Builder
}

func (f *fakeIO) Println(a ...any) { f.sb.WriteString(fmt.Sprintln(a...)) }

func (f *fakeIO) Printf(format string, a ...any) { f.sb.WriteString(fmt.Sprintf(format, a...)) }

func (f *fakeIO) output() string { return f.sb.String() }

type fakeHistory struct {
	mu      sync.Mutex
	entries []sqlite.Entry
}

func (f *fakeHistory) Record(ctx context.Context, e sqlite.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]sqlite.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]sqlite.Entry(nil), f.entries...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeClient struct {
	mu          sync.Mutex
	calls       []string
	lastVehicle string

	fetchFn     func() (*api.StatusResponse, error)
	parkFn      func(vehicleID, category string) (*api.ParkResponse, error)
	leaveFn     func(vehicleID string) (*api.LeaveResponse, error)
	configureFn func(cfg api.ConfigureRequest) (*api.ConfigureResponse, error)
}

func (f *fakeClient) record(op, vehicleID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if vehicleID != "" {
		f.lastVehicle = vehicleID
	}
}

func (f *fakeClient) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeClient) FetchState(ctx context.Context) (*api.StatusResponse, error) {
	f.record("fetch", "")
	if f.fetchFn == nil {
		return &api.StatusResponse{
			Nodes: []api.Node{
				{ID: 0, X: 0, Y: 0, Type: "road", IsEntry: true},
				{ID: 1, X: 0, Y: 1, Type: "slot", SlotType: "4w"},
			},
		}, nil
	}
	return f.fetchFn()
}

func (f *fakeClient) Park(ctx context.Context, vehicleID, category string) (*api.ParkResponse, error) {
	f.record("park", vehicleID)
	if f.parkFn == nil {
		return &api.ParkResponse{Message: "Allocated slot 1", SlotID: 1, VehicleType: category, Path: []int{0, 1}}, nil
	}
	return f.parkFn(vehicleID, category)
}

func (f *fakeClient) Leave(ctx context.Context, vehicleID string) (*api.LeaveResponse, error) {
	f.record("leave", vehicleID)
	if f.leaveFn == nil {
		return &api.LeaveResponse{Message: "Vehicle " + vehicleID + " left"}, nil
	}
	return f.leaveFn(vehicleID)
}

func (f *fakeClient) Configure(ctx context.Context, cfg api.ConfigureRequest) (*api.ConfigureResponse, error) {
	f.record("configure", "")
	if f.configureFn == nil {
		return &api.ConfigureResponse{
			Rows: cfg.TwoWheelerRowsTop + cfg.TwoWheelerRowsBottom + cfg.FourWheelerRows,
			Cols: cfg.TotalColumns,
		}, nil
	}
	return f.configureFn(cfg)
}

var _ clientapi.ClientAPI = (*fakeClient)(nil)

func newTestCli(client *fakeClient) (*Cli, *fakeIO, *fakeHistory) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := controller.New(client, nil, logger, time.Second)
	out := &fakeIO{}
	history := &fakeHistory{}
	return New(ctrl, history, out, logger), out, history
}

func TestRunPark_GeneratesVehicleID(t *testing.T) {
	client := &fakeClient{}
	c, out, history := newTestCli(client)

	require.NoError(t, c.RunPark(context.Background(), []string{"-category", "2w"}))

	assert.Equal(t, 1, client.count("park"))
	require.NotEmpty(t, client.lastVehicle)
	assert.NoError(t, validation.ValidateVehicleID(client.lastVehicle))
	assert.True(t, strings.HasPrefix(client.lastVehicle, "v-"))

	assert.Contains(t, out.output(), "slot:    1")
	assert.Contains(t, out.output(), "route:   0 -> 1")

	require.Len(t, history.entries, 1)
	assert.Equal(t, sqlite.OutcomeOK, history.entries[0].Outcome)
	assert.Equal(t, "2w", history.entries[0].Category)
}

func TestRunPark_InvalidCategoryShortCircuits(t *testing.T) {
	client := &fakeClient{}
	c, _, history := newTestCli(client)

	err := c.RunPark(context.Background(), []string{"-id", "car-1", "-category", "truck"})

	require.Error(t, err)
	assert.Empty(t, client.calls, "no request may be issued on local validation failure")
	assert.Empty(t, history.entries)
}

func TestRunPark_RefusedSurfacesReason(t *testing.T) {
	client := &fakeClient{
		parkFn: func(vehicleID, category string) (*api.ParkResponse, error) {
			return nil, &clientapi.AllocationError{Reason: "Parking Lot Full"}
		},
	}
	c, _, history := newTestCli(client)

	err := c.RunPark(context.Background(), []string{"-id", "car-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parking Lot Full")

	require.Len(t, history.entries, 1)
	assert.Equal(t, sqlite.OutcomeError, history.entries[0].Outcome)
}

func TestRunLeave_EmptyIDShortCircuits(t *testing.T) {
	client := &fakeClient{}
	c, _, history := newTestCli(client)

	err := c.RunLeave(context.Background(), nil)

	require.Error(t, err)
	assert.Empty(t, client.calls)
	assert.Empty(t, history.entries)
}

func TestRunLeave_NotFound(t *testing.T) {
	client := &fakeClient{
		leaveFn: func(vehicleID string) (*api.LeaveResponse, error) {
			return nil, &clientapi.NotFoundError{VehicleID: vehicleID, Reason: "Vehicle not found"}
		},
	}
	c, _, history := newTestCli(client)

	err := c.RunLeave(context.Background(), []string{"-id", "ghost"})

	var notFound *clientapi.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.VehicleID)

	require.Len(t, history.entries, 1)
	assert.Equal(t, sqlite.OutcomeError, history.entries[0].Outcome)
}

func TestRunConfigure_LocalBoundsShortCircuit(t *testing.T) {
	client := &fakeClient{}
	c, _, history := newTestCli(client)

	err := c.RunConfigure(context.Background(), []string{"-cols", "31"})

	require.Error(t, err)
	assert.Empty(t, client.calls)
	assert.Empty(t, history.entries)
}

func TestRunConfigure_Success(t *testing.T) {
	client := &fakeClient{}
	c, out, history := newTestCli(client)

	err := c.RunConfigure(context.Background(), []string{
		"-2w-top", "1", "-2w-bottom", "2", "-4w-rows", "4", "-cols", "12", "-4w-cols", "10",
	})

	require.NoError(t, err)
	assert.Contains(t, out.output(), "7 rows x 12 cols")
	require.Len(t, history.entries, 1)
	assert.Equal(t, sqlite.OutcomeOK, history.entries[0].Outcome)
}

func TestRunConfigure_RejectedByBackend(t *testing.T) {
	client := &fakeClient{
		configureFn: func(cfg api.ConfigureRequest) (*api.ConfigureResponse, error) {
			return nil, &clientapi.ValidationError{Reason: "at least one four-wheeler row required"}
		},
	}
	c, _, history := newTestCli(client)

	err := c.RunConfigure(context.Background(), []string{"-4w-rows", "0", "-2w-top", "1", "-cols", "5", "-4w-cols", "3"})

	var valErr *clientapi.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, history.entries, 1)
	assert.Equal(t, sqlite.OutcomeError, history.entries[0].Outcome)
}

func TestRunStatus_PrintsFrameAndSummary(t *testing.T) {
	t.Run("without stats", func(t *testing.T) {
		client := &fakeClient{
			fetchFn: func() (*api.StatusResponse, error) {
				return &api.StatusResponse{
					Nodes: []api.Node{
						{ID: 0, X: 0, Y: 0, Type: "slot", SlotType: "2w"},
						{ID: 1, X: 0, Y: 2, Type: "road", IsEntry: true},
					},
				}, nil
			},
		}
		c, out, _ := newTestCli(client)

		require.NoError(t, c.RunStatus(context.Background()))
		assert.Contains(t, out.output(), "TWO WHEELER ZONE")
		assert.Contains(t, out.output(), "occupancy stats unavailable")
	})

	t.Run("with stats", func(t *testing.T) {
		client := &fakeClient{
			fetchFn: func() (*api.StatusResponse, error) {
				return &api.StatusResponse{
					Stats: map[string]api.CategoryStats{"4w": {Total: 20, Available: 13}},
				}, nil
			},
		}
		c, out, _ := newTestCli(client)

		require.NoError(t, c.RunStatus(context.Background()))
		assert.Contains(t, out.output(), "four-wheeler: 13 of 20 available")
	})

	t.Run("fetch failure surfaces", func(t *testing.T) {
		client := &fakeClient{
			fetchFn: func() (*api.StatusResponse, error) {
				return nil, &clientapi.NetworkError{Op: "fetch state", Err: context.DeadlineExceeded}
			},
		}
		c, _, _ := newTestCli(client)

		var netErr *clientapi.NetworkError
		require.ErrorAs(t, c.RunStatus(context.Background()), &netErr)
	})
}

func TestRunHistory(t *testing.T) {
	client := &fakeClient{}
	c, out, _ := newTestCli(client)

	require.NoError(t, c.RunPark(context.Background(), []string{"-id", "car-1"}))
	require.NoError(t, c.RunHistory(context.Background(), []string{"-limit", "5"}))

	assert.Contains(t, out.output(), "park")
	assert.Contains(t, out.output(), "car-1")
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "(no route)", formatPath(nil))
	assert.Equal(t, "7", formatPath([]int{7}))
	assert.Equal(t, "0 -> 3 -> 7", formatPath([]int{0, 3, 7}))
}
