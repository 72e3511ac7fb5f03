package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmtank/components"
)

func TestToroidalDelta(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float32
		wantDX, wantDY float32
	}{
		{"direct", 10, 10, 20, 30, 10, 20},
		{"wrap right edge", 790, 10, 10, 10, 20, 0},
		{"wrap left edge", 10, 10, 790, 10, -20, 0},
		{"wrap bottom", 10, 590, 10, 10, 0, 20},
		{"same point", 50, 50, 50, 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := ToroidalDelta(tt.x1, tt.y1, tt.x2, tt.y2, 800, 600)
			if dx != tt.wantDX || dy != tt.wantDY {
				t.Errorf("ToroidalDelta = (%v, %v), want (%v, %v)", dx, dy, tt.wantDX, tt.wantDY)
			}
		})
	}
}

func TestGridQueryRadius(t *testing.T) {
	world := ecs.NewWorld()
	posMap := ecs.NewMap1[components.Position](world)

	place := func(x, y float32) ecs.Entity {
		pos := components.Position{X: x, Y: y}
		return posMap.NewEntity(&pos)
	}

	near := place(105, 100)
	far := place(300, 300)
	self := place(100, 100)

	grid := NewSpatialGrid(800, 600, 50)
	grid.Insert(near, 105, 100)
	grid.Insert(far, 300, 300)
	grid.Insert(self, 100, 100)

	got := grid.QueryRadiusInto(nil, 100, 100, 30, self, posMap)

	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(got))
	}
	if got[0].E != near {
		t.Errorf("got entity %v, want the near one", got[0].E)
	}
	if got[0].DX != 5 || got[0].DY != 0 {
		t.Errorf("delta = (%v, %v), want (5, 0)", got[0].DX, got[0].DY)
	}
}

func TestGridQueryAcrossWrap(t *testing.T) {
	world := ecs.NewWorld()
	posMap := ecs.NewMap1[components.Position](world)

	pos := components.Position{X: 795, Y: 100}
	e := posMap.NewEntity(&pos)

	grid := NewSpatialGrid(800, 600, 50)
	grid.Insert(e, 795, 100)

	got := grid.QueryRadiusInto(nil, 5, 100, 20, ecs.Entity{}, posMap)
	if len(got) != 1 {
		t.Fatalf("got %d neighbors across the wrap, want 1", len(got))
	}
	if got[0].DX != -10 {
		t.Errorf("wrap delta DX = %v, want -10", got[0].DX)
	}
}

func TestGridWrapWithPartialEdgeCell(t *testing.T) {
	// 810 is not a multiple of the cell size; the last column must
	// still be adjacent to column zero across the seam.
	world := ecs.NewWorld()
	posMap := ecs.NewMap1[components.Position](world)

	pos := components.Position{X: 805, Y: 100}
	e := posMap.NewEntity(&pos)

	grid := NewSpatialGrid(810, 600, 50)
	grid.Insert(e, 805, 100)

	got := grid.QueryRadiusInto(nil, 5, 100, 20, ecs.Entity{}, posMap)
	if len(got) != 1 {
		t.Fatalf("got %d neighbors across the partial-cell seam, want 1", len(got))
	}
	if got[0].DX != -10 {
		t.Errorf("wrap delta DX = %v, want -10", got[0].DX)
	}
}

func TestGridClear(t *testing.T) {
	world := ecs.NewWorld()
	posMap := ecs.NewMap1[components.Position](world)

	pos := components.Position{X: 100, Y: 100}
	e := posMap.NewEntity(&pos)

	grid := NewSpatialGrid(800, 600, 50)
	grid.Insert(e, 100, 100)
	grid.Clear()

	got := grid.QueryRadiusInto(nil, 100, 100, 50, ecs.Entity{}, posMap)
	if len(got) != 0 {
		t.Errorf("got %d neighbors after Clear, want 0", len(got))
	}
}
