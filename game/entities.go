package game

import (
	"github.com/mlange-42/ark/ecs"
)

// updatePassiveEntities advances everything that moves or pulses on
// its own: power-up and predator-food glow, rock drift and collisions,
// ore regrowth, and the home repair cooldown.
func (g *Game) updatePassiveEntities() {
	pwrQuery := g.pwrFilter.Query()
	for pwrQuery.Next() {
		_, _, pu := pwrQuery.Get()
		pu.Glow += 3 * pu.GlowDir
		if pu.Glow >= 100 {
			pu.Glow, pu.GlowDir = 100, -1
		} else if pu.Glow <= 0 {
			pu.Glow, pu.GlowDir = 0, 1
		}
	}

	pfodQuery := g.pfodFilter.Query()
	for pfodQuery.Next() {
		_, _, pf := pfodQuery.Get()
		pf.Glow += 3 * pf.GlowDir
		if pf.Glow >= 100 {
			pf.Glow, pf.GlowDir = 100, -1
		} else if pf.Glow <= 0 {
			pf.Glow, pf.GlowDir = 0, 1
		}
	}

	g.updateRocks()
	g.home.Update()
}

// updateRocks drifts the rocks, bounces them off the world edges,
// resolves rock-on-rock collisions, and regrows ore on schedule.
// Unlike everything else, rocks do not wrap: they carom off the walls.
func (g *Game) updateRocks() {
	var ents []ecs.Entity
	query := g.rockFilter.Query()
	for query.Next() {
		pos, vel, body, rock := query.Get()

		pos.X += vel.X
		pos.Y += vel.Y

		if pos.X < body.Radius {
			pos.X = body.Radius
			vel.X = -vel.X
		} else if pos.X > g.worldW-body.Radius {
			pos.X = g.worldW - body.Radius
			vel.X = -vel.X
		}
		if pos.Y < body.Radius {
			pos.Y = body.Radius
			vel.Y = -vel.Y
		} else if pos.Y > g.worldH-body.Radius {
			pos.Y = g.worldH - body.Radius
			vel.Y = -vel.Y
		}

		if rock.FlashTimer > 0 {
			rock.FlashTimer--
		}

		rock.ReplenishTimer--
		if rock.ReplenishTimer <= 0 {
			if rock.Ore < rock.MaxOre {
				rock.Ore++
			}
			if rock.Ore > 0 {
				rock.Depleted = false
			}
			rock.ReplenishTimer = g.replenishInterval()
		}

		ents = append(ents, query.Entity())
	}

	// Equal-mass elastic collisions: swap velocities along the pair
	// axis and separate the overlap.
	for i := 0; i < len(ents); i++ {
		for j := i + 1; j < len(ents); j++ {
			pi, pj := g.posMap.Get(ents[i]), g.posMap.Get(ents[j])
			bi, bj := g.bodyMap.Get(ents[i]), g.bodyMap.Get(ents[j])

			dx := pj.X - pi.X
			dy := pj.Y - pi.Y
			distSq := dx*dx + dy*dy
			minDist := bi.Radius + bj.Radius
			if distSq >= minDist*minDist {
				continue
			}

			dist := sqrt32(distSq)
			var nx, ny float32 = 1, 0
			if dist > 0 {
				nx, ny = dx/dist, dy/dist
			}

			vi, vj := g.velMap.Get(ents[i]), g.velMap.Get(ents[j])
			vi.X, vj.X = vj.X, vi.X
			vi.Y, vj.Y = vj.Y, vi.Y

			overlap := (minDist - dist) / 2
			pi.X -= nx * overlap
			pi.Y -= ny * overlap
			pj.X += nx * overlap
			pj.Y += ny * overlap

			g.rockMap.Get(ents[i]).Flash()
			g.rockMap.Get(ents[j]).Flash()
		}
	}
}
