package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lotops/parkview/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI is the backend surface the rest of the client depends on.
type ClientAPI interface {
	// FetchState reads the full lot snapshot.
	FetchState(ctx context.Context) (*api.StatusResponse, error)

	// Park requests a slot for the vehicle. An empty category means the
	// backend default (four-wheeler).
	Park(ctx context.Context, vehicleID, category string) (*api.ParkResponse, error)

	// Leave releases the slot held by the vehicle.
	Leave(ctx context.Context, vehicleID string) (*api.LeaveResponse, error)

	// Configure regenerates the lot grid on the backend.
	Configure(ctx context.Context, cfg api.ConfigureRequest) (*api.ConfigureResponse, error)
}

// Client is the HTTP client for the parking allocation backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an API client against the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchState reads the full lot snapshot. Any failure, transport or
// status, is a NetworkError: a failed read has no narrower meaning.
func (c *Client) FetchState(ctx context.Context) (*api.StatusResponse, error) {
	var resp api.StatusResponse
	if err := c.doRequest(ctx, http.MethodGet, "/status", nil, &resp); err != nil {
		return nil, asNetworkError("fetch state", err)
	}
	return &resp, nil
}

// Park requests a slot. A backend refusal (lot full, duplicate id)
// surfaces as AllocationError carrying the backend-supplied reason.
func (c *Client) Park(ctx context.Context, vehicleID, category string) (*api.ParkResponse, error) {
	if strings.TrimSpace(vehicleID) == "" {
		return nil, ErrEmptyVehicleID
	}
	if category == "" {
		category = api.CategoryFourWheeler
	}

	path := fmt.Sprintf("/park/%s?vehicle_type=%s", url.PathEscape(vehicleID), url.QueryEscape(category))

	var resp api.ParkResponse
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &resp); err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return nil, &AllocationError{Reason: se.detail}
		}
		return nil, asNetworkError("park", err)
	}
	return &resp, nil
}

// Leave releases the vehicle's slot. A 404 surfaces as NotFoundError.
func (c *Client) Leave(ctx context.Context, vehicleID string) (*api.LeaveResponse, error) {
	if strings.TrimSpace(vehicleID) == "" {
		return nil, ErrEmptyVehicleID
	}

	path := fmt.Sprintf("/leave/%s", url.PathEscape(vehicleID))

	var resp api.LeaveResponse
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &resp); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, &NotFoundError{VehicleID: vehicleID, Reason: se.detail}
		}
		return nil, asNetworkError("leave", err)
	}
	return &resp, nil
}

// Configure regenerates the lot grid. A backend rejection surfaces as
// ValidationError with the backend-supplied reason.
func (c *Client) Configure(ctx context.Context, cfg api.ConfigureRequest) (*api.ConfigureResponse, error) {
	var resp api.ConfigureResponse
	if err := c.doRequest(ctx, http.MethodPost, "/configure", cfg, &resp); err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return nil, &ValidationError{Reason: se.detail}
		}
		return nil, asNetworkError("configure", err)
	}
	return &resp, nil
}

// doRequest performs one HTTP round trip. Non-2xx responses come back as
// *statusError with the backend "detail" field when present; everything
// else is a plain error for the caller to wrap.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Detail != "" {
			return &statusError{code: resp.StatusCode, detail: errResp.Detail}
		}
		return &statusError{code: resp.StatusCode, detail: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// asNetworkError wraps err into a NetworkError unless it is one of the
// local sentinels.
func asNetworkError(op string, err error) error {
	if errors.Is(err, ErrEmptyVehicleID) {
		return err
	}
	return &NetworkError{Op: op, Err: err}
}
