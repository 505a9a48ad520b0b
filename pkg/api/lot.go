package api

// Vehicle category values as they appear on the wire.
const (
	CategoryTwoWheeler  = "2w"
	CategoryFourWheeler = "4w"
)

// Node is one point of the lot graph as reported by GET /status.
type Node struct {
	ID          int    `json:"id"`
	X           int    `json:"x"`    // column in the logical grid
	Y           int    `json:"y"`    // row in the logical grid
	Type        string `json:"type"` // "road" | "slot"
	Filled      bool   `json:"filled"`
	VehicleID   string `json:"vehicle_id,omitempty"`   // present when a slot is filled
	VehicleType string `json:"vehicle_type,omitempty"` // category of the occupant
	SlotType    string `json:"slot_type,omitempty"`    // slot category, absent for roads
	IsEntry     bool   `json:"is_entry"`
}

// Edge is an undirected adjacency between two node ids.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// CategoryStats reports per-category capacity. Derived on the backend,
// decoration only.
type CategoryStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// StatusResponse is the full lot snapshot returned by GET /status.
// Stats is optional: an older backend omits it entirely.
type StatusResponse struct {
	Nodes []Node                   `json:"nodes"`
	Edges []Edge                   `json:"edges"`
	Stats map[string]CategoryStats `json:"stats,omitempty"`
}

// ParkResponse is the allocation result of POST /park/{vehicle_id}.
// Path is an ordered list of node ids from an entry node to the slot.
type ParkResponse struct {
	Message     string `json:"message"`
	SlotID      int    `json:"slot_id"`
	VehicleType string `json:"vehicle_type"`
	Path        []int  `json:"path"`
}

// LeaveResponse is the result of POST /leave/{vehicle_id}.
type LeaveResponse struct {
	Message string `json:"message"`
}

// ConfigureRequest regenerates the whole lot grid on the backend.
type ConfigureRequest struct {
	TwoWheelerRowsTop    int `json:"two_wheeler_rows_top"`
	TwoWheelerRowsBottom int `json:"two_wheeler_rows_bottom"`
	FourWheelerRows      int `json:"four_wheeler_rows"`
	TotalColumns         int `json:"total_columns"`
	FourWheelerColumns   int `json:"four_wheeler_columns"`
}

// ConfigureResponse echoes the accepted grid shape:
// rows == two_wheeler_rows_top + two_wheeler_rows_bottom + four_wheeler_rows,
// cols == total_columns.
type ConfigureResponse struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// ErrorResponse is the backend error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
