package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmtank/components"
	"github.com/pthm-cable/swarmtank/roles"
	"github.com/pthm-cable/swarmtank/systems"
)

// updatePredators runs the predator pass: target selection, movement,
// pickups, then the pairwise brawl and base-siege checks.
func (g *Game) updatePredators() {
	query := g.predFilter.Query()
	for query.Next() {
		pos, vel, body, pred := query.Get()
		e := query.Entity()

		g.tickPredatorTimers(pred)
		pred.Health -= PredatorHealthDecay

		m := systems.Mover{
			Pos:      systems.Vec2{X: pos.X, Y: pos.Y},
			Vel:      systems.Vec2{X: vel.X, Y: vel.Y},
			MaxSpeed: pred.MaxSpeed,
			MaxForce: pred.MaxForce,
		}

		var acc systems.Vec2
		if g.fightModeTimer > 0 {
			acc = g.predatorFight(e, pos, pred, m)
		} else {
			acc = g.predatorHunt(pos, pred, m)
		}
		acc = acc.Add(g.predatorSeparation(e, pos, m))

		v := systems.Vec2{X: vel.X, Y: vel.Y}.Add(acc).Limit(pred.MaxSpeed)
		vel.X, vel.Y = v.X, v.Y
		pos.X = mod(pos.X+vel.X, g.worldW)
		pos.Y = mod(pos.Y+vel.Y, g.worldH)

		g.predatorRockContact(pos, vel, body, pred)
		g.predatorPickups(pos, body, pred)
	}

	g.predatorBrawls()
	g.siegeCheck()
}

func (g *Game) tickPredatorTimers(pred *components.Predator) {
	if pred.AttackCooldown > 0 {
		pred.AttackCooldown--
	}
	if pred.FightFlash > 0 {
		pred.FightFlash--
	}
	if pred.SpeedBuff > 0 {
		pred.SpeedBuff--
		if pred.SpeedBuff == 0 {
			pred.MaxSpeed = pred.BaseMaxSpeed
		}
	}
	if pred.DamageBuff > 0 {
		pred.DamageBuff--
	}
}

// predatorHunt walks the target priority ladder: a leader is always
// worth chasing, then dropped predator food, then the weakest nearby
// bot, then power-ups, and finally a lazy patrol toward food or the
// swarm centroid.
func (g *Game) predatorHunt(pos *components.Position, pred *components.Predator, m systems.Mover) systems.Vec2 {
	// 1: leader intercept
	if target, dx, dy, dist, ok := g.nearestLeader(pos, pred.HuntRadius); ok {
		future := m.Pos.Add(systems.Vec2{X: dx, Y: dy}).
			Add(systems.Vec2{X: target.VX, Y: target.VY}.Scale(3))
		speed := m
		if dist < 50 {
			speed.MaxSpeed = pred.MaxSpeed * 1.2
		}
		g.tryKill(pred, target.E, dist)
		return systems.Seek(speed, future)
	}

	// 2: dropped predator food draws from twice the hunt radius
	if tp, ok := g.nearestItem(pos, g.pfoods, pred.HuntRadius*2); ok {
		return systems.Seek(m, m.Pos.Add(tp))
	}

	// 3: weakest reachable bot
	if target, dx, dy, dist, ok := g.nearestPrey(pos, pred.HuntRadius); ok {
		speed := m
		if dist < 50 {
			speed.MaxSpeed = pred.MaxSpeed * 1.3
		} else if dist < 80 {
			speed.MaxSpeed = pred.MaxSpeed * 1.15
		}
		g.tryKill(pred, target.E, dist)
		return systems.Seek(speed, m.Pos.Add(systems.Vec2{X: dx, Y: dy}))
	}

	// 4: power-ups
	if tp, ok := g.nearestPower(pos); ok {
		return systems.Seek(m, m.Pos.Add(tp))
	}

	// 5: patrol toward food, or toward the swarm centroid
	patrol := m
	patrol.MaxSpeed = pred.MaxSpeed * 0.6
	patrol.MaxForce = pred.MaxForce * 0.5
	if tp, ok := g.nearestItem(pos, g.foods, float32(math.MaxFloat32)); ok {
		return systems.Seek(patrol, patrol.Pos.Add(tp))
	}
	if cx, cy, ok := g.botCentroidDelta(pos); ok {
		return systems.Seek(patrol, patrol.Pos.Add(systems.Vec2{X: cx, Y: cy}))
	}
	return systems.Vec2{}
}

// predatorFight chases the nearest rival predator and lands ranged
// hits on cooldown.
func (g *Game) predatorFight(e ecs.Entity, pos *components.Position, pred *components.Predator, m systems.Mover) systems.Vec2 {
	var rival ecs.Entity
	var rdx, rdy float32
	dist := pred.HuntRadius
	found := false
	for i := range g.preds {
		if g.preds[i].E == e {
			continue
		}
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.preds[i].X, g.preds[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < dist {
			dist, rival, rdx, rdy, found = d, g.preds[i].E, dx, dy, true
		}
	}
	if !found {
		return systems.Vec2{}
	}

	if dist < pred.KillRadius && pred.AttackCooldown <= 0 {
		if other := g.predMap.Get(rival); other != nil {
			other.Health -= 40
			other.FightFlash = 8
			if other.Health <= 0 {
				pred.Kills++
			}
		}
		pred.FightFlash = 8
		pred.AttackCooldown = 12
	}

	return systems.Seek(m, m.Pos.Add(systems.Vec2{X: rdx, Y: rdy}))
}

// predatorBrawls resolves close-range predator collisions: mutual
// damage and an elastic bounce, in every mode, regardless of cooldown.
func (g *Game) predatorBrawls() {
	var ents []ecs.Entity
	query := g.predFilter.Query()
	for query.Next() {
		ents = append(ents, query.Entity())
	}

	for i := 0; i < len(ents); i++ {
		for j := i + 1; j < len(ents); j++ {
			pi, pj := g.posMap.Get(ents[i]), g.posMap.Get(ents[j])
			dx, dy := g.toroidalDelta(pi.X, pi.Y, pj.X, pj.Y)
			if dx*dx+dy*dy >= 14*14 {
				continue
			}

			a, b := g.predMap.Get(ents[i]), g.predMap.Get(ents[j])
			a.Health -= 18
			b.Health -= 18
			if a.AttackCooldown < 18 {
				a.AttackCooldown = 18
			}
			if b.AttackCooldown < 18 {
				b.AttackCooldown = 18
			}
			a.FightFlash = 18
			b.FightFlash = 18

			va, vb := g.velMap.Get(ents[i]), g.velMap.Get(ents[j])
			va.X, vb.X = vb.X, va.X
			va.Y, vb.Y = vb.Y, va.Y
		}
	}
}

// siegeCheck damages the base when at least two predators crowd it.
func (g *Game) siegeCheck() {
	pad := float32(g.cfg.Predator.SiegeRangePad)

	var besiegers []ecs.Entity
	query := g.predFilter.Query()
	for query.Next() {
		pos, _, body, _ := query.Get()
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.home.Pos.X, g.home.Pos.Y)
		reach := g.home.Radius + body.Radius + pad
		if dx*dx+dy*dy < reach*reach {
			besiegers = append(besiegers, query.Entity())
		}
	}
	if len(besiegers) < 2 {
		return
	}

	for _, e := range besiegers {
		pred := g.predMap.Get(e)
		if pred.AttackCooldown > 0 {
			continue
		}
		g.home.TakeDamage(int32(g.cfg.Predator.SiegeDamage))
		pred.AttackCooldown = int32(g.cfg.Predator.AttackCooldown)
		g.shakeTimer = 20
	}
}

// tryKill applies the kill contract when the prey is inside the kill
// radius and the attack cooldown is ready. Each bot dies exactly once.
func (g *Game) tryKill(pred *components.Predator, prey ecs.Entity, dist float32) {
	if dist >= pred.KillRadius || pred.AttackCooldown > 0 {
		return
	}
	if _, done := g.killedBots[prey]; done {
		return
	}
	g.killedBots[prey] = struct{}{}
	pred.Kills++
	pred.Health = clamp32(pred.Health+float32(g.cfg.Predator.HealPerKill), 0, pred.MaxHealth)
	pred.AttackCooldown = int32(g.cfg.Predator.AttackCooldown)
	g.historicalKills++
	g.collector.RecordKill()
}

// nearestLeader finds the closest living leader within radius.
func (g *Game) nearestLeader(pos *components.Position, radius float32) (botInfo, float32, float32, float32, bool) {
	var best botInfo
	var bdx, bdy float32
	bestDist := radius
	found := false
	for i := range g.bots {
		if g.bots[i].Role != roles.Leader {
			continue
		}
		if _, dead := g.killedBots[g.bots[i].E]; dead {
			continue
		}
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.bots[i].X, g.bots[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < bestDist {
			best, bdx, bdy, bestDist, found = g.bots[i], dx, dy, d, true
		}
	}
	return best, bdx, bdy, bestDist, found
}

// nearestPrey finds the most attractive bot within radius. Wounded
// bots look closer than they are, and so draw the predator first; the
// discount only ranks candidates, it never extends the hunt radius.
func (g *Game) nearestPrey(pos *components.Position, radius float32) (botInfo, float32, float32, float32, bool) {
	var best botInfo
	var bdx, bdy, bestDist float32
	bestEff := float32(math.MaxFloat32)
	found := false
	for i := range g.bots {
		if _, dead := g.killedBots[g.bots[i].E]; dead {
			continue
		}
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.bots[i].X, g.bots[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d >= radius {
			continue
		}

		eff := d
		if g.bots[i].Health < 30 {
			eff = d * 0.5
		} else if g.bots[i].Health < 50 {
			eff = d * 0.8
		}
		if eff < bestEff {
			best, bdx, bdy, bestDist, bestEff, found = g.bots[i], dx, dy, d, eff, true
		}
	}
	return best, bdx, bdy, bestDist, found
}

// nearestItem returns the toroidal offset to the closest snapshot item
// within radius.
func (g *Game) nearestItem(pos *components.Position, items []itemInfo, radius float32) (systems.Vec2, bool) {
	var best systems.Vec2
	bestDist := radius
	found := false
	for i := range items {
		if _, gone := g.consumed[items[i].E]; gone {
			continue
		}
		dx, dy := g.toroidalDelta(pos.X, pos.Y, items[i].X, items[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < bestDist {
			best, bestDist, found = systems.Vec2{X: dx, Y: dy}, d, true
		}
	}
	return best, found
}

// nearestPower returns the toroidal offset to the closest power-up.
func (g *Game) nearestPower(pos *components.Position) (systems.Vec2, bool) {
	var best systems.Vec2
	bestDist := float32(math.MaxFloat32)
	found := false
	for i := range g.powers {
		if _, gone := g.consumed[g.powers[i].E]; gone {
			continue
		}
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.powers[i].X, g.powers[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < bestDist {
			best, bestDist, found = systems.Vec2{X: dx, Y: dy}, d, true
		}
	}
	return best, found
}

// botCentroidDelta returns the toroidal offset to the swarm centroid.
func (g *Game) botCentroidDelta(pos *components.Position) (float32, float32, bool) {
	if len(g.bots) == 0 {
		return 0, 0, false
	}
	var sx, sy float32
	for i := range g.bots {
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.bots[i].X, g.bots[i].Y)
		sx += dx
		sy += dy
	}
	n := float32(len(g.bots))
	return sx / n, sy / n, true
}

// predatorSeparation keeps the pack spread out.
func (g *Game) predatorSeparation(e ecs.Entity, pos *components.Position, m systems.Mover) systems.Vec2 {
	var sum systems.Vec2
	count := 0
	for i := range g.preds {
		if g.preds[i].E == e {
			continue
		}
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.preds[i].X, g.preds[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d <= 0 || d >= 40 {
			continue
		}
		sum = sum.Add(systems.Vec2{X: -dx, Y: -dy}.Normalize().Scale(1 / d))
		count++
	}
	if count == 0 || sum.MagSq() == 0 {
		return systems.Vec2{}
	}
	desired := sum.Scale(1 / float32(count)).Normalize().Scale(m.MaxSpeed)
	return desired.Sub(m.Vel).Limit(m.MaxForce)
}

// predatorRockContact grinds predators against rocks the same way bots
// grind, with heavier contact damage.
func (g *Game) predatorRockContact(pos *components.Position, vel *components.Velocity, body *components.Body, pred *components.Predator) {
	for i := range g.rocks {
		rk := &g.rocks[i]
		dx, dy := g.toroidalDelta(pos.X, pos.Y, rk.X, rk.Y)
		dist := sqrt32(dx*dx + dy*dy)
		minDist := body.Radius + rk.R + 2

		if dist < minDist {
			away := systems.Vec2{X: -dx, Y: -dy}.Normalize()
			if dist <= 0 {
				away = systems.Vec2{X: 1, Y: 0}
			}

			pred.Health -= float32(g.cfg.Rock.PredatorContactDamage)

			push := away.Scale(minDist - dist)
			pos.X = mod(pos.X+push.X, g.worldW)
			pos.Y = mod(pos.Y+push.Y, g.worldH)

			if rv := g.velMap.Get(rk.E); rv != nil {
				rv.X -= push.X * 0.07
				rv.Y -= push.Y * 0.07
			}
			if rock := g.rockMap.Get(rk.E); rock != nil {
				rock.Flash()
			}
		} else if dist < minDist+30 {
			away := systems.Vec2{X: -dx, Y: -dy}.Normalize()
			frac := (minDist + 30 - dist) / 30
			v := systems.Vec2{X: vel.X, Y: vel.Y}.Add(away.Scale(1.5 * frac)).Limit(pred.MaxSpeed)
			vel.X, vel.Y = v.X, v.Y
		}
	}
}

// predatorPickups lets predators grab power-ups and scavenge dropped
// predator food.
func (g *Game) predatorPickups(pos *components.Position, body *components.Body, pred *components.Predator) {
	for i := range g.powers {
		p := &g.powers[i]
		if _, gone := g.consumed[p.E]; gone {
			continue
		}
		if !g.overlaps(pos, body.Radius, p.X, p.Y, p.R) {
			continue
		}
		switch p.Kind {
		case components.PowerHealth:
			pred.Health = clamp32(pred.Health+50, 0, pred.MaxHealth)
		case components.PowerSpeed:
			pred.SpeedBuff = int32(g.cfg.Buffs.Duration)
			pred.MaxSpeed = pred.BaseMaxSpeed * float32(g.cfg.Buffs.SpeedMultiplier)
		case components.PowerDamage:
			pred.DamageBuff = int32(g.cfg.Buffs.Duration)
			pred.AttackCooldown -= 10
			if pred.AttackCooldown < 0 {
				pred.AttackCooldown = 0
			}
		}
		g.consumed[p.E] = struct{}{}
		g.pwrRemovals = append(g.pwrRemovals, p.E)
	}

	for i := range g.pfoods {
		f := &g.pfoods[i]
		if _, gone := g.consumed[f.E]; gone {
			continue
		}
		if !g.overlaps(pos, body.Radius, f.X, f.Y, f.R) {
			continue
		}
		pred.Health = clamp32(pred.Health+PredatorFoodValue, 0, pred.MaxHealth)
		g.consumed[f.E] = struct{}{}
		g.pfodRemovals = append(g.pfodRemovals, f.E)
	}
}
