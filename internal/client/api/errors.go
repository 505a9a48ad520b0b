package api

import (
	"errors"
	"fmt"
)

// ErrEmptyVehicleID is returned before any request is made when a
// park/leave call carries a blank vehicle id.
var ErrEmptyVehicleID = errors.New("vehicle id cannot be empty")

// NetworkError reports a transport failure, a non-success status the
// operation has no dedicated meaning for, or a malformed response body.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend unreachable or misbehaving: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AllocationError means the backend explicitly refused to allocate a
// slot, e.g. the lot is full or the vehicle id is already parked.
type AllocationError struct {
	Reason string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation refused: %s", e.Reason)
}

// NotFoundError means the backend does not know the vehicle id a release
// was requested for.
type NotFoundError struct {
	VehicleID string
	Reason    string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("vehicle %q: %s", e.VehicleID, e.Reason)
	}
	return fmt.Sprintf("vehicle %q is not parked", e.VehicleID)
}

// ValidationError means the backend rejected a grid configuration.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration rejected: %s", e.Reason)
}

// statusError carries a non-2xx response out of doRequest so each
// operation can map it onto its own error type.
type statusError struct {
	code   int
	detail string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.detail)
}
