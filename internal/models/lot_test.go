package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotops/parkview/pkg/api"
)

func TestFromWire_Nodes(t *testing.T) {
	resp := &api.StatusResponse{
		Nodes: []api.Node{
			{ID: 0, X: 1, Y: 0, Type: "road", IsEntry: true},
			{ID: 1, X: 2, Y: 0, Type: "road"},
			{ID: 2, X: 0, Y: 1, Type: "slot", SlotType: "2w"},
			{ID: 3, X: 1, Y: 1, Type: "slot", SlotType: "4w", Filled: true, VehicleID: "car-1", VehicleType: "4w"},
		},
		Edges: []api.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 3}},
	}

	lot := FromWire(resp)

	require.Len(t, lot.Roads, 2)
	require.Len(t, lot.Slots, 2)
	require.Len(t, lot.Edges, 2)

	assert.True(t, lot.Roads[0].Entry)
	assert.False(t, lot.Roads[1].Entry)

	empty := lot.Slots[2]
	assert.Equal(t, TwoWheeler, empty.Category)
	assert.False(t, empty.Occupied())

	occupied := lot.Slots[3]
	assert.Equal(t, FourWheeler, occupied.Category)
	require.True(t, occupied.Occupied())
	assert.Equal(t, "car-1", occupied.Occupant.VehicleID)
	assert.Equal(t, FourWheeler, occupied.Occupant.Category)
}

func TestFromWire_Defensive(t *testing.T) {
	tests := []struct {
		name string
		node api.Node
		want func(t *testing.T, lot *Lot)
	}{
		{
			name: "filled slot without vehicle id stays occupied but unlabeled",
			node: api.Node{ID: 1, Type: "slot", SlotType: "2w", Filled: true},
			want: func(t *testing.T, lot *Lot) {
				slot := lot.Slots[1]
				require.True(t, slot.Occupied())
				assert.Empty(t, slot.Occupant.VehicleID)
				assert.Equal(t, TwoWheeler, slot.Occupant.Category)
			},
		},
		{
			name: "filled road stays a plain road",
			node: api.Node{ID: 1, Type: "road", Filled: true, VehicleID: "ghost"},
			want: func(t *testing.T, lot *Lot) {
				require.Contains(t, lot.Roads, 1)
				assert.NotContains(t, lot.Slots, 1)
			},
		},
		{
			name: "slot without category defaults to four-wheeler",
			node: api.Node{ID: 1, Type: "slot"},
			want: func(t *testing.T, lot *Lot) {
				assert.Equal(t, FourWheeler, lot.Slots[1].Category)
			},
		},
		{
			name: "occupant without category inherits the slot category",
			node: api.Node{ID: 1, Type: "slot", SlotType: "2w", Filled: true, VehicleID: "m-1"},
			want: func(t *testing.T, lot *Lot) {
				assert.Equal(t, TwoWheeler, lot.Slots[1].Occupant.Category)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := FromWire(&api.StatusResponse{Nodes: []api.Node{tt.node}})
			tt.want(t, lot)
		})
	}
}

func TestFromWire_Stats(t *testing.T) {
	t.Run("absent stats stay nil", func(t *testing.T) {
		lot := FromWire(&api.StatusResponse{})
		assert.Nil(t, lot.Stats)
	})

	t.Run("present stats are converted per category", func(t *testing.T) {
		lot := FromWire(&api.StatusResponse{
			Stats: map[string]api.CategoryStats{
				"2w": {Total: 10, Available: 4},
				"4w": {Total: 20, Available: 20},
			},
		})
		require.NotNil(t, lot.Stats)
		assert.Equal(t, CategoryStats{Total: 10, Available: 4}, lot.Stats.ByCategory[TwoWheeler])
		assert.Equal(t, CategoryStats{Total: 20, Available: 20}, lot.Stats.ByCategory[FourWheeler])
	})
}

func TestLot_Position(t *testing.T) {
	lot := FromWire(&api.StatusResponse{
		Nodes: []api.Node{
			{ID: 0, X: 3, Y: 1, Type: "road"},
			{ID: 1, X: 5, Y: 2, Type: "slot", SlotType: "4w"},
		},
	})

	col, row, ok := lot.Position(0)
	require.True(t, ok)
	assert.Equal(t, 3, col)
	assert.Equal(t, 1, row)

	col, row, ok = lot.Position(1)
	require.True(t, ok)
	assert.Equal(t, 5, col)
	assert.Equal(t, 2, row)

	_, _, ok = lot.Position(42)
	assert.False(t, ok)
	assert.Equal(t, 2, lot.NodeCount())
}
