package systems

import (
	"math"
	"testing"
)

func testMover() Mover {
	return Mover{
		Pos:      Vec2{100, 100},
		Vel:      Vec2{1, 0},
		MaxSpeed: 3,
		MaxForce: 0.1,
	}
}

func TestSteerLimitsForce(t *testing.T) {
	m := testMover()
	got := Steer(m, Vec2{100, 0})
	if got.Mag() > m.MaxForce+1e-5 {
		t.Errorf("Steer magnitude %v exceeds max force %v", got.Mag(), m.MaxForce)
	}
}

func TestSeekPointsAtTarget(t *testing.T) {
	m := testMover()
	m.Vel = Vec2{}
	got := Seek(m, Vec2{200, 100})
	if got.X <= 0 || math.Abs(float64(got.Y)) > 1e-5 {
		t.Errorf("Seek toward +x gave %v", got)
	}
}

func TestFlockingEmptyNeighbors(t *testing.T) {
	m := testMover()
	var empty []FlockNeighbor

	if got := Separate(m, empty, 25); got != (Vec2{}) {
		t.Errorf("Separate with no neighbors = %v, want zero", got)
	}
	if got := Align(m, empty, 50); got != (Vec2{}) {
		t.Errorf("Align with no neighbors = %v, want zero", got)
	}
	if got := Cohesion(m, empty, 50); got != (Vec2{}) {
		t.Errorf("Cohesion with no neighbors = %v, want zero", got)
	}
}

func TestSeparatePushesAway(t *testing.T) {
	m := testMover()
	neighbors := []FlockNeighbor{
		{DX: 10, DY: 0, Dist: 10, Vel: Vec2{}},
	}
	got := Separate(m, neighbors, 25)
	if got.X >= 0 {
		t.Errorf("Separate from neighbor at +x should push -x, got %v", got)
	}
}

func TestSeparateIgnoresOutOfRange(t *testing.T) {
	m := testMover()
	neighbors := []FlockNeighbor{
		{DX: 30, DY: 0, Dist: 30, Vel: Vec2{}},
	}
	if got := Separate(m, neighbors, 25); got != (Vec2{}) {
		t.Errorf("Separate beyond radius = %v, want zero", got)
	}
}

func TestAlignMatchesHeading(t *testing.T) {
	m := testMover()
	m.Vel = Vec2{}
	neighbors := []FlockNeighbor{
		{DX: 10, DY: 0, Dist: 10, Vel: Vec2{0, 2}},
		{DX: -10, DY: 5, Dist: 11, Vel: Vec2{0, 3}},
	}
	got := Align(m, neighbors, 50)
	if got.Y <= 0 {
		t.Errorf("Align with +y neighbors gave %v", got)
	}
}

func TestCohesionSteersTowardCentroid(t *testing.T) {
	m := testMover()
	m.Vel = Vec2{}
	neighbors := []FlockNeighbor{
		{DX: 20, DY: 0, Dist: 20, Vel: Vec2{}},
		{DX: 30, DY: 0, Dist: 30, Vel: Vec2{}},
	}
	got := Cohesion(m, neighbors, 50)
	if got.X <= 0 {
		t.Errorf("Cohesion toward +x centroid gave %v", got)
	}
}
