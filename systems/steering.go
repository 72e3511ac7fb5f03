package systems

// Mover is the kinematic state a steering behavior needs: where the
// agent is, how it moves, and how hard it can turn.
type Mover struct {
	Pos      Vec2
	Vel      Vec2
	MaxSpeed float32
	MaxForce float32
}

// FlockNeighbor is one nearby flockmate, sampled with its toroidal
// offset from the mover so behaviors work correctly across the wrap.
type FlockNeighbor struct {
	DX, DY float32 // toroidal delta from the mover to the neighbor
	Dist   float32
	Vel    Vec2
}

// Steer converts a desired velocity into a force-limited steering vector.
func Steer(m Mover, desired Vec2) Vec2 {
	return desired.Sub(m.Vel).Limit(m.MaxForce)
}

// Seek steers toward a target position at full speed.
func Seek(m Mover, target Vec2) Vec2 {
	desired := target.Sub(m.Pos).Normalize().Scale(m.MaxSpeed)
	return Steer(m, desired)
}

// Separate steers away from neighbors closer than radius, weighting
// each repulsion by inverse distance. An empty or out-of-range neighbor
// set yields the zero vector.
func Separate(m Mover, neighbors []FlockNeighbor, radius float32) Vec2 {
	var sum Vec2
	count := 0
	for _, n := range neighbors {
		if n.Dist <= 0 || n.Dist >= radius {
			continue
		}
		away := Vec2{-n.DX, -n.DY}.Normalize().Scale(1 / n.Dist)
		sum = sum.Add(away)
		count++
	}
	if count == 0 || sum.MagSq() == 0 {
		return Vec2{}
	}
	desired := sum.Scale(1 / float32(count)).Normalize().Scale(m.MaxSpeed)
	return Steer(m, desired)
}

// Align steers toward the average heading of neighbors within radius.
func Align(m Mover, neighbors []FlockNeighbor, radius float32) Vec2 {
	var sum Vec2
	count := 0
	for _, n := range neighbors {
		if n.Dist <= 0 || n.Dist >= radius {
			continue
		}
		sum = sum.Add(n.Vel)
		count++
	}
	if count == 0 || sum.MagSq() == 0 {
		return Vec2{}
	}
	desired := sum.Scale(1 / float32(count)).Normalize().Scale(m.MaxSpeed)
	return Steer(m, desired)
}

// Cohesion steers toward the centroid of neighbors within radius.
func Cohesion(m Mover, neighbors []FlockNeighbor, radius float32) Vec2 {
	var sum Vec2
	count := 0
	for _, n := range neighbors {
		if n.Dist <= 0 || n.Dist >= radius {
			continue
		}
		sum = sum.Add(Vec2{n.DX, n.DY})
		count++
	}
	if count == 0 {
		return Vec2{}
	}
	centroid := m.Pos.Add(sum.Scale(1 / float32(count)))
	return Seek(m, centroid)
}
