package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lotops/parkview/pkg/api"
)

// VehicleIDPattern defines the accepted vehicle id format: latin letters,
// digits, dash and underscore, 1-32 characters.
var VehicleIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

// MaxVehicleIDLen is the maximum accepted vehicle id length.
const MaxVehicleIDLen = 32

// Grid shape bounds enforced before a configure request leaves the
// client. The backend owns the real validation; these only keep the UI
// within sane limits.
const (
	MaxGridRows    = 20
	MaxGridColumns = 30
)

// ValidateVehicleID checks that a vehicle id is non-blank and matches
// the accepted format. Called before any park/leave request is sent.
func ValidateVehicleID(vehicleID string) error {
	if strings.TrimSpace(vehicleID) == "" {
		return fmt.Errorf("vehicle id cannot be empty")
	}
	if len(vehicleID) > MaxVehicleIDLen {
		return fmt.Errorf("vehicle id must not exceed %d characters", MaxVehicleIDLen)
	}
	if !VehicleIDPattern.MatchString(vehicleID) {
		return fmt.Errorf("vehicle id can only contain letters (a-z, A-Z), numbers (0-9), dashes (-) and underscores (_)")
	}
	return nil
}

// ValidateCategory checks a wire category value. Empty is allowed and
// means the caller wants the default.
func ValidateCategory(category string) error {
	switch category {
	case "", api.CategoryTwoWheeler, api.CategoryFourWheeler:
		return nil
	default:
		return fmt.Errorf("category must be %q or %q", api.CategoryTwoWheeler, api.CategoryFourWheeler)
	}
}

// ValidateConfiguration checks a grid configuration against the client
// side bounds before it is sent to the backend.
func ValidateConfiguration(cfg api.ConfigureRequest) error {
	if cfg.TwoWheelerRowsTop < 0 || cfg.TwoWheelerRowsBottom < 0 || cfg.FourWheelerRows < 0 ||
		cfg.TotalColumns < 0 || cfg.FourWheelerColumns < 0 {
		return fmt.Errorf("grid dimensions cannot be negative")
	}

	rows := cfg.TwoWheelerRowsTop + cfg.TwoWheelerRowsBottom + cfg.FourWheelerRows
	if rows == 0 {
		return fmt.Errorf("grid must have at least one row")
	}
	if rows > MaxGridRows {
		return fmt.Errorf("grid cannot exceed %d rows, got %d", MaxGridRows, rows)
	}

	if cfg.TotalColumns == 0 {
		return fmt.Errorf("grid must have at least one column")
	}
	if cfg.TotalColumns > MaxGridColumns {
		return fmt.Errorf("grid cannot exceed %d columns, got %d", MaxGridColumns, cfg.TotalColumns)
	}

	if cfg.FourWheelerColumns > cfg.TotalColumns {
		return fmt.Errorf("four-wheeler columns (%d) cannot exceed total columns (%d)", cfg.FourWheelerColumns, cfg.TotalColumns)
	}

	return nil
}
