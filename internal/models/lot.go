package models

import "github.com/lotops/parkview/pkg/api"

// Category identifies the vehicle class a slot is sized for. The values
// match the wire representation.
type Category string

const (
	TwoWheeler  Category = api.CategoryTwoWheeler
	FourWheeler Category = api.CategoryFourWheeler
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == TwoWheeler || c == FourWheeler
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	switch c {
	case TwoWheeler:
		return "two-wheeler"
	case FourWheeler:
		return "four-wheeler"
	default:
		return string(c)
	}
}

// Occupant is the vehicle currently holding a slot.
type Occupant struct {
	VehicleID string
	Category  Category
}

// SlotNode is a parking space. Occupant is nil while the slot is empty,
// so an occupied slot without an occupant cannot be represented.
type SlotNode struct {
	ID       int
	Col      int
	Row      int
	Category Category
	Occupant *Occupant
}

// Occupied reports whether the slot currently holds a vehicle.
func (s *SlotNode) Occupied() bool {
	return s.Occupant != nil
}

// RoadNode is a traversable point. Entry marks the designated vehicle
// entry points.
type RoadNode struct {
	ID    int
	Col   int
	Row   int
	Entry bool
}

// Edge is an undirected adjacency between two node ids.
type Edge struct {
	Source int
	Target int
}

// CategoryStats is the per-category capacity summary.
type CategoryStats struct {
	Total     int
	Available int
}

// Stats aggregates per-category capacity. Always optional: when the
// backend omits stats the Lot carries nil, never synthesized zeros.
type Stats struct {
	ByCategory map[Category]CategoryStats
}

// Lot is the domain view of one backend snapshot. It is replaced
// wholesale on every refresh and never mutated in place.
type Lot struct {
	Slots map[int]*SlotNode
	Roads map[int]*RoadNode
	Edges []Edge
	Stats *Stats
}

// NodeCount returns the total number of nodes in the lot.
func (l *Lot) NodeCount() int {
	return len(l.Slots) + len(l.Roads)
}

// Position returns the logical grid coordinates of a node by id.
func (l *Lot) Position(id int) (col, row int, ok bool) {
	if s, found := l.Slots[id]; found {
		return s.Col, s.Row, true
	}
	if r, found := l.Roads[id]; found {
		return r.Col, r.Row, true
	}
	return 0, 0, false
}

// categoryOrDefault maps a wire category onto Category, falling back to
// four-wheeler for absent or unknown values.
func categoryOrDefault(wire string) Category {
	if c := Category(wire); c.Valid() {
		return c
	}
	return FourWheeler
}

// FromWire converts a status response into the domain model. The
// conversion is defensive where the backend underdelivers: a filled slot
// without a vehicle id becomes occupied-but-unlabeled, an occupant
// without a category inherits the slot's, and a road flagged as filled
// stays a plain road. Missing stats stay missing.
func FromWire(resp *api.StatusResponse) *Lot {
	lot := &Lot{
		Slots: make(map[int]*SlotNode),
		Roads: make(map[int]*RoadNode),
		Edges: make([]Edge, 0, len(resp.Edges)),
	}

	for _, n := range resp.Nodes {
		if n.Type == "slot" {
			slot := &SlotNode{
				ID:       n.ID,
				Col:      n.X,
				Row:      n.Y,
				Category: categoryOrDefault(n.SlotType),
			}
			if n.Filled {
				occCategory := n.VehicleType
				if occCategory == "" {
					occCategory = n.SlotType
				}
				slot.Occupant = &Occupant{
					VehicleID: n.VehicleID,
					Category:  categoryOrDefault(occCategory),
				}
			}
			lot.Slots[n.ID] = slot
			continue
		}
		lot.Roads[n.ID] = &RoadNode{
			ID:    n.ID,
			Col:   n.X,
			Row:   n.Y,
			Entry: n.IsEntry,
		}
	}

	for _, e := range resp.Edges {
		lot.Edges = append(lot.Edges, Edge{Source: e.Source, Target: e.Target})
	}

	if resp.Stats != nil {
		stats := &Stats{ByCategory: make(map[Category]CategoryStats, len(resp.Stats))}
		for wire, s := range resp.Stats {
			stats.ByCategory[categoryOrDefault(wire)] = CategoryStats{
				Total:     s.Total,
				Available: s.Available,
			}
		}
		lot.Stats = stats
	}

	return lot
}
